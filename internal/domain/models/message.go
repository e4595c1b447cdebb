// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Importance is the display priority of a message.
type Importance int

const (
	ImportanceNormal   Importance = 0
	ImportancePriority Importance = 1
)

// Label returns the human-readable importance level.
func (i Importance) Label() string {
	if i == ImportancePriority {
		return "Priority"
	}
	return "Normal"
}

// MaxMessageTitleLen bounds message titles; matched by a form check so the
// store never sees longer values.
const MaxMessageTitleLen = 140

// Message is a news item published into a group's feed. Public controls
// whether unauthenticated visitors can read it; authenticated users see
// every message regardless of group membership.
type Message struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"group_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`

	Title      string     `bson:"title" json:"title"`
	Content    string     `bson:"content" json:"content"` // sanitized HTML
	Public     bool       `bson:"public" json:"public"`
	Importance Importance `bson:"importance" json:"importance"`

	PubDate   time.Time `bson:"pub_date" json:"pub_date"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
