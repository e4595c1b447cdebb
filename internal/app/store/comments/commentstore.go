// internal/app/store/comments/commentstore.go
package comments

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumhq/quorum/internal/app/system/htmlsanitize"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists message comments.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("comments")}
}

var commentSort = bson.D{{Key: "pub_date", Value: -1}}

func (s *Store) Create(ctx context.Context, c *models.Comment) error {
	c.Content = htmlsanitize.Plain(c.Content)
	if c.PubDate.IsZero() {
		c.PubDate = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// ListByMessage returns a message's comments, newest first.
func (s *Store) ListByMessage(ctx context.Context, messageID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.coll.Find(ctx, bson.M{"message_id": messageID}, options.Find().SetSort(commentSort))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return out, nil
}

// ListByMessages loads comments for a page of messages in one query,
// grouped by message, each group newest first.
func (s *Store) ListByMessages(ctx context.Context, messageIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Comment, error) {
	out := make(map[primitive.ObjectID][]models.Comment, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}

	cur, err := s.coll.Find(ctx,
		bson.M{"message_id": bson.M{"$in": messageIDs}},
		options.Find().SetSort(commentSort))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		out[c.MessageID] = append(out[c.MessageID], c)
	}
	return out, cur.Err()
}

// DeleteByMessage removes every comment on a message, for message
// deletion.
func (s *Store) DeleteByMessage(ctx context.Context, messageID primitive.ObjectID) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"message_id": messageID}); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}
