// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/quorumhq/quorum/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's display name, username, Mongo
// ObjectID, and a found flag. If no user is present in context or the
// session carries a malformed ID, it returns zero values and false, so
// ok=true always means a valid, authenticated user.
func UserCtx(r *http.Request) (name, username string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return user.Name, user.Username, userID, true
}

// IsSignedIn reports whether the request carries an authenticated user.
func IsSignedIn(r *http.Request) bool {
	_, _, _, ok := UserCtx(r)
	return ok
}
