// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupCategory classifies workgroups ("normal groups", "clubs", ...).
type GroupCategory struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`
}

// Group is a workgroup. The slug is the external identifier used in URLs
// and is globally unique. CategoryName is denormalized from the category
// document so the group directory can sort on it without a join.
type Group struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"name_ci"`
	Slug         string             `bson:"slug" json:"slug"`
	CategoryID   primitive.ObjectID `bson:"category_id" json:"category_id"`
	CategoryName string             `bson:"category_name" json:"category_name"`

	LogoURL     string              `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	NewsfeedURL string              `bson:"newsfeed_url,omitempty" json:"newsfeed_url,omitempty"`
	CalendarID  *primitive.ObjectID `bson:"calendar_id,omitempty" json:"calendar_id,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
