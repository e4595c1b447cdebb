package directory_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/quorumhq/quorum/internal/app/features/directory"
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/rooms"
	"github.com/quorumhq/quorum/internal/testutil"
	"go.uber.org/zap"
)

type countingDirectory struct {
	mu    sync.Mutex
	calls int
}

func (d *countingDirectory) Rooms(ctx context.Context) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return map[string]string{}, nil
}

func newTestHandler(t *testing.T, refresher *rooms.Refresher) (*directory.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := directory.NewHandler(db, refresher, errLog, logger)
	return handler, testutil.NewFixtures(t, db)
}

func callRecovering(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestSearch_EmptyQueryFallsThroughToFullListing(t *testing.T) {
	handler, fx := newTestHandler(t, nil)
	fx.User("gontran", "Gontran", "Dubois")

	viewer := fx.User("viewer", "Vie", "Wer")
	req := httptest.NewRequest("GET", "/directory/", nil)
	req = testutil.WithUser(req, viewer)
	rec := httptest.NewRecorder()

	callRecovering(func() { handler.Search(rec, req) })

	// The handler must not have short-circuited to an error before the
	// render; the full-listing store behavior is asserted in the users
	// store tests.
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success for empty query", rec.Code)
	}
}

func TestSearch_RoomsDisabledWithoutRefresher(t *testing.T) {
	handler, _ := newTestHandler(t, nil)
	if handler.RoomsEnabled {
		t.Error("RoomsEnabled should be false when no refresher is configured")
	}
}

func TestSearch_TriggersThrottledRefresh(t *testing.T) {
	dir := &countingDirectory{}
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	refresher := rooms.NewRefresher(dir, users.NewStore(db), 7*24*time.Hour, logger)
	handler := directory.NewHandler(db, refresher, uierrors.NewErrorLogger(logger), logger)
	fx := testutil.NewFixtures(t, db)
	viewer := fx.User("viewer", "Vie", "Wer")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/directory/?q=gont", nil)
		req = testutil.WithUser(req, viewer)
		rec := httptest.NewRecorder()
		callRecovering(func() { handler.Search(rec, req) })
	}

	// Give the background refresh a moment.
	time.Sleep(100 * time.Millisecond)

	dir.mu.Lock()
	calls := dir.calls
	dir.mu.Unlock()
	if calls != 1 {
		t.Errorf("directory fetch count = %d, want 1 (throttled)", calls)
	}
}
