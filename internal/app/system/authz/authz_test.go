package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/quorumhq/quorum/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	name, username, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("anonymous request should not be ok")
	}
	if name != "" || username != "" || uid != primitive.NilObjectID {
		t.Errorf("expected zero values, got %q %q %v", name, username, uid)
	}
}

func TestUserCtx_Authenticated(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:       id.Hex(),
		Username: "gontran",
		Name:     "Gontran Dubois",
	})

	name, username, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok for authenticated request")
	}
	if uid != id {
		t.Errorf("userID: got %v, want %v", uid, id)
	}
	if username != "gontran" || name != "Gontran Dubois" {
		t.Errorf("got %q/%q", name, username)
	}
}

func TestUserCtx_MalformedIDFailsClosed(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-a-hex-id", Username: "x"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("malformed session ID should fail closed")
	}
	if authz.IsSignedIn(req) {
		t.Error("IsSignedIn should be false for malformed session ID")
	}
}
