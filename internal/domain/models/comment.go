// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLen bounds comment bodies.
const MaxCommentLen = 140

// Comment is a short reply attached to a message. Comments are immutable
// once created; there is no edit or delete path.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID primitive.ObjectID `bson:"message_id" json:"message_id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content   string             `bson:"content" json:"content"`
	PubDate   time.Time          `bson:"pub_date" json:"pub_date"`
}
