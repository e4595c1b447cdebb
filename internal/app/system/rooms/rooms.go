// internal/app/system/rooms/rooms.go
package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Directory yields the current username -> room mapping from the
// facilities system.
type Directory interface {
	Rooms(ctx context.Context) (map[string]string, error)
}

// RoomWriter persists room assignments onto user records.
type RoomWriter interface {
	UpdateRooms(ctx context.Context, byUsername map[string]string) error
}

// HTTPDirectory fetches the room mapping from a JSON endpoint shaped
// as {"username": "room", ...}.
type HTTPDirectory struct {
	URL    string
	Client *http.Client
}

func (d *HTTPDirectory) Rooms(ctx context.Context) (map[string]string, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rooms request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rooms endpoint returned %s", resp.Status)
	}

	var m map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode rooms payload: %w", err)
	}
	return m, nil
}

// Refresher throttles best-effort room refreshes. MaybeRefresh is cheap
// to call on every directory request: it does nothing until the
// configured interval has elapsed since the last attempt, then kicks a
// background refresh so the request that triggered it never waits.
// Refresh failures are logged and retried after the next interval.
type Refresher struct {
	dir      Directory
	users    RoomWriter
	interval time.Duration
	log      *zap.Logger

	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRefresher returns a refresher, or nil when dir is nil (rooms
// integration disabled). A nil *Refresher is safe to call.
func NewRefresher(dir Directory, users RoomWriter, interval time.Duration, logger *zap.Logger) *Refresher {
	if dir == nil {
		return nil
	}
	return &Refresher{
		dir:      dir,
		users:    users,
		interval: interval,
		log:      logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source. For tests.
func (rf *Refresher) SetClock(now func() time.Time) { rf.now = now }

// MaybeRefresh starts a background refresh if the interval has elapsed.
// It returns immediately; the triggering request is never blocked on
// the facilities system.
func (rf *Refresher) MaybeRefresh() {
	if rf == nil {
		return
	}

	rf.mu.Lock()
	n := rf.now()
	if n.Sub(rf.last) < rf.interval {
		rf.mu.Unlock()
		return
	}
	rf.last = n
	rf.mu.Unlock()

	go rf.refresh()
}

func (rf *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	byUsername, err := rf.dir.Rooms(ctx)
	if err != nil {
		rf.log.Warn("room refresh failed", zap.Error(err))
		return
	}
	if err := rf.users.UpdateRooms(ctx, byUsername); err != nil {
		rf.log.Warn("room update failed", zap.Error(err))
		return
	}
	rf.log.Info("rooms refreshed", zap.Int("count", len(byUsername)))
}
