// internal/app/store/users/userstore.go
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	wmongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already in use")
)

// Store provides member account persistence.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("users")}
}

// Create inserts a user, populating the folded shadow fields used for
// case-insensitive uniqueness and sorting.
func (s *Store) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	fold(u)

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if wmongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// Update rewrites the mutable profile fields.
func (s *Store) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	fold(u)

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if wmongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &u, nil
}

// GetByIDs loads a batch of users keyed by ID. Missing IDs are simply
// absent from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out[u.ID] = &u
	}
	return out, cur.Err()
}

// directorySort orders the member directory: last name, then first
// name, then username, all case-insensitive ascending.
var directorySort = bson.D{
	{Key: "last_name_ci", Value: 1},
	{Key: "first_name_ci", Value: 1},
	{Key: "username_ci", Value: 1},
}

// ListPage returns one directory page matching filter, plus a flag for
// whether more pages follow. A nil filter lists everyone.
func (s *Store) ListPage(ctx context.Context, filter bson.M, page paging.Page) ([]models.User, bool, error) {
	if filter == nil {
		filter = bson.M{}
	}

	opts := page.ApplyToFind(options.Find().SetSort(directorySort))
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, false, fmt.Errorf("decode users: %w", err)
	}
	out, hasNext := paging.Trim(out, page.Size)
	return out, hasNext, nil
}

// UpdateRooms writes room assignments in bulk, matching on the folded
// username. Usernames with no account are skipped silently.
func (s *Store) UpdateRooms(ctx context.Context, byUsername map[string]string) error {
	if len(byUsername) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(byUsername))
	for username, room := range byUsername {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"username_ci": text.Fold(username)}).
			SetUpdate(bson.M{"$set": bson.M{"room": room, "updated_at": time.Now().UTC()}}))
	}

	_, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("bulk update rooms: %w", err)
	}
	return nil
}

func fold(u *models.User) {
	u.UsernameCI = text.Fold(u.Username)
	u.FirstNameCI = text.Fold(u.FirstName)
	u.LastNameCI = text.Fold(u.LastName)
	u.EmailCI = text.Fold(u.Email)
}
