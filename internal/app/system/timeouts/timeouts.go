// internal/app/system/timeouts/timeouts.go
package timeouts

import (
	"context"
	"time"
)

// Database operation deadlines.
const (
	Short  = 3 * time.Second  // single-document lookups
	Medium = 5 * time.Second  // list queries
	Long   = 10 * time.Second // multi-collection resolution
	Ping   = 2 * time.Second  // health checks
)

func WithShort(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Short)
}

func WithMedium(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Medium)
}

func WithLong(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Long)
}

func WithPing(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Ping)
}
