package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quorumhq/quorum/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only!!", "quorum-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKeySecure(t *testing.T) {
	_, err := auth.NewSessionManager("", "s", "", true, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty key in secure mode")
	}
}

func TestNewSessionManager_EmptyKeyDev(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err != nil {
		t.Fatalf("dev mode should generate a key, got error: %v", err)
	}
}

func TestRequireSignedIn_AnonymousRedirectsToLogin(t *testing.T) {
	sm := newManager(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run for anonymous request")
	})

	req := httptest.NewRequest("GET", "/directory/?q=gont", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location = %q, want /login?return=...", loc)
	}
	if !strings.Contains(loc, "directory") {
		t.Errorf("Location = %q, want original URI preserved", loc)
	}
}

func TestRequireSignedIn_APICallerGets401(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/directory/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_AuthenticatedPassesThrough(t *testing.T) {
	sm := newManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		u, ok := auth.CurrentUser(r)
		if !ok || u.Username != "gontran" {
			t.Errorf("CurrentUser = %+v, %v; want gontran", u, ok)
		}
	})

	req := httptest.NewRequest("GET", "/directory/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Username: "gontran"})
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(next).ServeHTTP(rec, req)

	if !called {
		t.Error("next handler was not called for authenticated request")
	}
}

func TestSignInSignOut_RoundTrip(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignIn(rec, req, "6543bb0c0c0c0c0c0c0c0c0c"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("SignIn should set a session cookie")
	}

	rec2 := httptest.NewRecorder()
	if err := sm.SignOut(rec2, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
}
