package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/features/login"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/quorumhq/quorum/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*login.Handler, *users.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only!!", "quorum-test", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	sm.SetUserFetcher(users.NewFetcher(db))
	return login.NewHandler(db, sm, uierrors.NewErrorLogger(logger), logger), users.NewStore(db)
}

func seedUser(t *testing.T, store *users.Store, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.org",
		PasswordHash: string(hash),
	}
	if err := store.Create(testutil.TestContext(t), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func callRecovering(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestSubmit_CorrectPasswordOpensSession(t *testing.T) {
	handler, store := newTestHandler(t)
	seedUser(t, store, "gontran", "hunter2")

	form := url.Values{
		"username": {"gontran"},
		"password": {"hunter2"},
		"return":   {"/directory/"},
	}
	req := testutil.NewFormRequest("/login", form)
	rec := httptest.NewRecorder()

	callRecovering(func() { handler.Submit(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/directory/" {
		t.Errorf("Location = %q, want /directory/", loc)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestSubmit_WrongPasswordFails(t *testing.T) {
	handler, store := newTestHandler(t)
	seedUser(t, store, "gontran", "hunter2")

	form := url.Values{
		"username": {"gontran"},
		"password": {"wrong"},
	}
	req := testutil.NewFormRequest("/login", form)
	rec := httptest.NewRecorder()

	callRecovering(func() { handler.Submit(rec, req) })

	if rec.Code == http.StatusSeeOther {
		t.Error("wrong password should not redirect to success")
	}
}

func TestSubmit_UnknownUserFails(t *testing.T) {
	handler, _ := newTestHandler(t)

	form := url.Values{
		"username": {"nobody"},
		"password": {"x"},
	}
	req := testutil.NewFormRequest("/login", form)
	rec := httptest.NewRecorder()

	callRecovering(func() { handler.Submit(rec, req) })

	if rec.Code == http.StatusSeeOther {
		t.Error("unknown user should not redirect to success")
	}
}

func TestShowForm_SignedInRedirectsHome(t *testing.T) {
	handler, store := newTestHandler(t)
	u := seedUser(t, store, "gontran", "hunter2")

	req := httptest.NewRequest("GET", "/login", nil)
	req = testutil.WithUser(req, u)
	rec := httptest.NewRecorder()

	callRecovering(func() { handler.ShowForm(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
