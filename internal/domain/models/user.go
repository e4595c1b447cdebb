// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a member of the intranet. Group membership is not embedded here:
// a user belongs to a workgroup iff they hold at least one post in one of
// the group's bureaus (see the posts collection).
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	UsernameCI  string             `bson:"username_ci" json:"username_ci"` // lowercase, diacritics-stripped
	FirstName   string             `bson:"first_name" json:"first_name"`
	FirstNameCI string             `bson:"first_name_ci" json:"first_name_ci"`
	LastName    string             `bson:"last_name" json:"last_name"`
	LastNameCI  string             `bson:"last_name_ci" json:"last_name_ci"`
	Email       string             `bson:"email" json:"email"`
	EmailCI     string             `bson:"email_ci" json:"email_ci"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	// Room is sourced from the external room directory when that
	// integration is configured. Empty otherwise.
	Room string `bson:"room,omitempty" json:"room,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DisplayName returns "First Last", falling back to the username when the
// name fields are empty.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
