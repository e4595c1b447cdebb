// internal/app/store/bureaus/bureaustore.go
package bureaus

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
)

var (
	ErrNotFound      = errors.New("bureau not found")
	ErrDuplicatePost = errors.New("bureau already has a post of this type")
)

// Store persists bureaus, post types, and officer posts. Membership in
// a workgroup is derived from holding a post in any of its bureaus,
// past or present.
type Store struct {
	bureaus   *mongo.Collection
	postTypes *mongo.Collection
	posts     *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		bureaus:   db.Collection("bureaus"),
		postTypes: db.Collection("post_types"),
		posts:     db.Collection("posts"),
	}
}

func (s *Store) CreateBureau(ctx context.Context, b *models.Bureau) error {
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	res, err := s.bureaus.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("insert bureau: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (s *Store) CreatePostType(ctx context.Context, pt *models.PostType) error {
	pt.DescriptionCI = text.Fold(pt.Description)
	res, err := s.postTypes.InsertOne(ctx, pt)
	if err != nil {
		if wmongo.IsDup(err) {
			return fmt.Errorf("post type %q already exists", pt.Description)
		}
		return fmt.Errorf("insert post type: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		pt.ID = oid
	}
	return nil
}

// CreatePost assigns a user to a post in a bureau. A bureau carries at
// most one post of each type, so the (bureau, post type) pair is
// unique regardless of holder.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	res, err := s.posts.InsertOne(ctx, p)
	if err != nil {
		if wmongo.IsDup(err) {
			return ErrDuplicatePost
		}
		return fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// MemberIDs resolves a workgroup's member set: every user holding a
// post in any bureau of the group, regardless of bureau tenure, with
// duplicates collapsed.
func (s *Store) MemberIDs(ctx context.Context, groupID primitive.ObjectID) ([]primitive.ObjectID, error) {
	bureauIDs, err := s.bureauIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(bureauIDs) == 0 {
		return nil, nil
	}

	raw, err := s.posts.Distinct(ctx, "user_id", bson.M{"bureau_id": bson.M{"$in": bureauIDs}})
	if err != nil {
		return nil, fmt.Errorf("distinct members: %w", err)
	}

	out := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if oid, ok := v.(primitive.ObjectID); ok {
			out = append(out, oid)
		}
	}
	return out, nil
}

// GroupIDsForUser lists the workgroups where the user holds at least
// one post, for the posting permission check.
func (s *Store) GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	rawBureaus, err := s.posts.Distinct(ctx, "bureau_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("distinct bureaus for user: %w", err)
	}
	if len(rawBureaus) == 0 {
		return nil, nil
	}

	rawGroups, err := s.bureaus.Distinct(ctx, "group_id", bson.M{"_id": bson.M{"$in": rawBureaus}})
	if err != nil {
		return nil, fmt.Errorf("distinct groups for user: %w", err)
	}

	out := make([]primitive.ObjectID, 0, len(rawGroups))
	for _, v := range rawGroups {
		if oid, ok := v.(primitive.ObjectID); ok {
			out = append(out, oid)
		}
	}
	return out, nil
}

// PostsInGroup lists every post across the group's bureaus, joined with
// its post type description, for the member roster view.
type RosterEntry struct {
	UserID   primitive.ObjectID
	PostName string
	BureauID primitive.ObjectID
}

func (s *Store) PostsInGroup(ctx context.Context, groupID primitive.ObjectID) ([]RosterEntry, error) {
	bureauIDs, err := s.bureauIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(bureauIDs) == 0 {
		return nil, nil
	}

	cur, err := s.posts.Find(ctx, bson.M{"bureau_id": bson.M{"$in": bureauIDs}})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	typeNames, err := s.postTypeNames(ctx, posts)
	if err != nil {
		return nil, err
	}

	out := make([]RosterEntry, 0, len(posts))
	for _, p := range posts {
		out = append(out, RosterEntry{
			UserID:   p.UserID,
			PostName: typeNames[p.PostTypeID],
			BureauID: p.BureauID,
		})
	}
	return out, nil
}

func (s *Store) bureauIDs(ctx context.Context, groupID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := s.bureaus.Distinct(ctx, "_id", bson.M{"group_id": groupID})
	if err != nil {
		return nil, fmt.Errorf("list bureaus: %w", err)
	}
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if oid, ok := v.(primitive.ObjectID); ok {
			out = append(out, oid)
		}
	}
	return out, nil
}

func (s *Store) postTypeNames(ctx context.Context, posts []models.Post) (map[primitive.ObjectID]string, error) {
	ids := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]bool, len(posts))
	for _, p := range posts {
		if !seen[p.PostTypeID] {
			seen[p.PostTypeID] = true
			ids = append(ids, p.PostTypeID)
		}
	}

	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.postTypes.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find post types: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var pt models.PostType
		if err := cur.Decode(&pt); err != nil {
			return nil, fmt.Errorf("decode post type: %w", err)
		}
		out[pt.ID] = pt.Description
	}
	return out, cur.Err()
}
