// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates the indexes the application depends on. Safe to run
// on every startup; Mongo treats identical definitions as a no-op.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	specs := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{
			coll: "users",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "username_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "email_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "last_name_ci", Value: 1}, {Key: "first_name_ci", Value: 1}, {Key: "username_ci", Value: 1}}},
			},
		},
		{
			coll: "group_categories",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			coll: "groups",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "name_ci", Value: 1}}},
				{Keys: bson.D{{Key: "category_name", Value: 1}, {Key: "name_ci", Value: 1}}},
			},
		},
		{
			coll: "bureaus",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "group_id", Value: 1}}},
			},
		},
		{
			coll: "post_types",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "description_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			coll: "posts",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "bureau_id", Value: 1}, {Key: "post_type_id", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "user_id", Value: 1}}},
			},
		},
		{
			coll: "messages",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "pub_date", Value: -1}}},
				{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "pub_date", Value: -1}}},
			},
		},
		{
			coll: "comments",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "message_id", Value: 1}, {Key: "pub_date", Value: -1}}},
			},
		},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.coll).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", s.coll, err)
		}
		logger.Debug("indexes ensured", zap.String("collection", s.coll), zap.Int("count", len(s.models)))
	}
	return nil
}
