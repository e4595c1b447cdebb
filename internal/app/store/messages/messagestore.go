// internal/app/store/messages/messagestore.go
package messages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quorumhq/quorum/internal/app/system/htmlsanitize"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("message not found")

// Scope captures who is reading. Anonymous readers only ever see
// public messages; every read path goes through scope.filter so the
// rule cannot be bypassed by a new query.
type Scope struct {
	Authenticated bool
}

func (sc Scope) filter(base bson.M) bson.M {
	if sc.Authenticated {
		return base
	}
	out := bson.M{"public": true}
	for k, v := range base {
		out[k] = v
	}
	return out
}

// Visible reports whether a single message is readable under the scope.
func Visible(m *models.Message, sc Scope) bool {
	return sc.Authenticated || m.Public
}

// Store persists newsfeed messages.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("messages")}
}

var feedSort = bson.D{{Key: "pub_date", Value: -1}}

// Create inserts a message. Content is sanitized HTML; the title is
// plain text capped at the form limit.
func (s *Store) Create(ctx context.Context, m *models.Message) error {
	m.Title = htmlsanitize.Plain(m.Title)
	m.Content = htmlsanitize.Rich(m.Content)
	if m.PubDate.IsZero() {
		m.PubDate = time.Now().UTC()
	}
	m.UpdatedAt = m.PubDate

	res, err := s.coll.InsertOne(ctx, m)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

// Update rewrites the editable fields. The publication date is
// preserved so edits do not bump a message back to the top of the feed.
func (s *Store) Update(ctx context.Context, m *models.Message) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": m.ID}, bson.M{"$set": bson.M{
		"title":      htmlsanitize.Plain(m.Title),
		"content":    htmlsanitize.Rich(m.Content),
		"public":     m.Public,
		"importance": m.Importance,
		"group_id":   m.GroupID,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message. Its comments are removed by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a message if the scope may see it. Invisible and
// missing messages are indistinguishable to the caller.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID, sc Scope) (*models.Message, error) {
	var m models.Message
	err := s.coll.FindOne(ctx, sc.filter(bson.M{"_id": id})).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return &m, nil
}

// List returns one feed page, newest first, restricted by scope.
func (s *Store) List(ctx context.Context, sc Scope, page paging.Page) ([]models.Message, bool, error) {
	return s.listPage(ctx, sc.filter(bson.M{}), page)
}

// ListByGroup returns one page of a workgroup's messages, newest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, sc Scope, page paging.Page) ([]models.Message, bool, error) {
	return s.listPage(ctx, sc.filter(bson.M{"group_id": groupID}), page)
}

// Latest returns the n newest visible messages, for the RSS feed.
func (s *Store) Latest(ctx context.Context, sc Scope, n int) ([]models.Message, error) {
	opts := options.Find().SetSort(feedSort).SetLimit(int64(n))
	cur, err := s.coll.Find(ctx, sc.filter(bson.M{}), opts)
	if err != nil {
		return nil, fmt.Errorf("list latest messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return out, nil
}

func (s *Store) listPage(ctx context.Context, filter bson.M, page paging.Page) ([]models.Message, bool, error) {
	opts := page.ApplyToFind(options.Find().SetSort(feedSort))
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, false, fmt.Errorf("decode messages: %w", err)
	}
	out, hasNext := paging.Trim(out, page.Size)
	return out, hasNext, nil
}
