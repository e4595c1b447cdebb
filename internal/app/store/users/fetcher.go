// internal/app/store/users/fetcher.go
package users

import (
	"context"

	"github.com/quorumhq/quorum/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the user store to the session middleware.
type Fetcher struct {
	store *Store
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: NewStore(db)}
}

// FetchUser loads fresh user data for the session middleware. Errors
// and unknown IDs both yield nil so the request proceeds anonymously.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	u, err := f.store.GetByID(ctx, oid)
	if err != nil {
		return nil
	}
	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.DisplayName(),
		Email:    u.Email,
	}
}
