// internal/domain/models/bureau.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bureau is a tenure period during which a group has an active slate of
// officer posts. EndedAt is nil while the tenure is current. A group may
// have several bureaus over time.
type Bureau struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	StartedAt time.Time          `bson:"started_at" json:"started_at"`
	EndedAt   *time.Time         `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
}

// PostType names an officer role ("president", "director", ...).
// Description is unique.
type PostType struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description   string             `bson:"description" json:"description"`
	DescriptionCI string             `bson:"description_ci" json:"description_ci"`
}

// Post is one officer seat: a user holding a typed role within a bureau.
// A bureau cannot have two posts of the same type.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BureauID    primitive.ObjectID `bson:"bureau_id" json:"bureau_id"`
	PostTypeID  primitive.ObjectID `bson:"post_type_id" json:"post_type_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
