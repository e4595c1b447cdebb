package feeds_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/features/feeds"
	"github.com/quorumhq/quorum/internal/testutil"
	"go.uber.org/zap"
)

func TestLatest_WritesRSS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := feeds.NewHandler(db, uierrors.NewErrorLogger(logger), logger, "Quorum", "https://intranet.example.org")
	fx := testutil.NewFixtures(t, db)

	author := fx.User("gontran", "Gontran", "Dubois")
	cat := fx.Category("Clubs")
	g := fx.Group("Chess Club", "chess", cat)
	fx.Message(g, author, "feed me", true, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))

	req := httptest.NewRequest("GET", "/feeds/latest", nil)
	req = testutil.WithUser(req, author)
	rec := httptest.NewRecorder()

	handler.Latest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "rss") {
		t.Errorf("Content-Type = %q, want rss", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<rss") || !strings.Contains(body, "feed me") {
		t.Errorf("body missing rss envelope or item: %.200s", body)
	}
}
