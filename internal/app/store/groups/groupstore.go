// internal/app/store/groups/groupstore.go
package groups

import (
	"context"
	"errors"
	"fmt"
	"time"

	wmongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("group not found")
	ErrDuplicate = errors.New("group name or slug already in use")
)

// Store persists workgroups and their categories.
type Store struct {
	groups     *mongo.Collection
	categories *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		groups:     db.Collection("groups"),
		categories: db.Collection("group_categories"),
	}
}

// CreateCategory inserts a workgroup category.
func (s *Store) CreateCategory(ctx context.Context, c *models.GroupCategory) error {
	c.NameCI = text.Fold(c.Name)
	res, err := s.categories.InsertOne(ctx, c)
	if err != nil {
		if wmongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// Create inserts a workgroup. CategoryName is denormalized from the
// referenced category so group listings can sort on it directly.
func (s *Store) Create(ctx context.Context, g *models.Group) error {
	var cat models.GroupCategory
	if err := s.categories.FindOne(ctx, bson.M{"_id": g.CategoryID}).Decode(&cat); err != nil {
		return fmt.Errorf("resolve category: %w", err)
	}
	g.CategoryName = cat.Name

	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	g.NameCI = text.Fold(g.Name)

	res, err := s.groups.InsertOne(ctx, g)
	if err != nil {
		if wmongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

// GetBySlug looks up a live workgroup by its URL slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var g models.Group
	err := s.groups.FindOne(ctx, bson.M{"slug": slug, "deleted_at": nil}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	err := s.groups.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &g, nil
}

// SortOrder picks the group directory ordering.
type SortOrder string

const (
	SortByName     SortOrder = "name"
	SortByCategory SortOrder = "category"
	SortByCreated  SortOrder = "created"
)

// ParseSort maps the "sort" query value to an order, defaulting to name.
func ParseSort(v string) SortOrder {
	switch v {
	case string(SortByCategory):
		return SortByCategory
	case string(SortByCreated):
		return SortByCreated
	default:
		return SortByName
	}
}

// List returns every live workgroup in the requested order. The group
// directory is not paginated.
func (s *Store) List(ctx context.Context, order SortOrder) ([]models.Group, error) {
	// Each order leads with its own key and falls back through the
	// name/category/creation composite, all ascending.
	var sort bson.D
	switch order {
	case SortByCategory:
		sort = bson.D{{Key: "category_name", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "created_at", Value: 1}}
	case SortByCreated:
		sort = bson.D{{Key: "created_at", Value: 1}, {Key: "name_ci", Value: 1}}
	default:
		sort = bson.D{{Key: "name_ci", Value: 1}, {Key: "category_name", Value: 1}, {Key: "created_at", Value: 1}}
	}

	cur, err := s.groups.Find(ctx, bson.M{"deleted_at": nil}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Group
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return out, nil
}

// ListByIDs loads a batch of groups keyed by ID.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Group, error) {
	out := make(map[primitive.ObjectID]*models.Group, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.groups.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find groups by ids: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var g models.Group
		if err := cur.Decode(&g); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		out[g.ID] = &g
	}
	return out, cur.Err()
}
