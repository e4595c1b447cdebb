// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fixed page sizes for list surfaces. The newsfeed page size is
// configurable between FeedSizeMin and FeedSizeMax; everything else is
// fixed.
const (
	GroupNewsPageSize = 8
	DirectoryPageSize = 20

	FeedSizeMin     = 5
	FeedSizeMax     = 8
	FeedSizeDefault = 5
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads the "page" query parameter. Missing, malformed, zero,
// and negative values all resolve to page 1.
func ParsePage(r *http.Request, size int) Page {
	n := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			n = v
		}
	}
	return Page{Number: n, Size: size}
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Size)
}

// LimitPlusOne returns the fetch limit including one look-ahead document
// used to decide whether a next page exists.
func (p Page) LimitPlusOne() int64 {
	return int64(p.Size) + 1
}

// ApplyToFind sets skip and look-ahead limit on a Mongo find.
func (p Page) ApplyToFind(opts *options.FindOptions) *options.FindOptions {
	return opts.SetSkip(p.Skip()).SetLimit(p.LimitPlusOne())
}

// Trim drops the look-ahead document and reports whether it was present.
func Trim[T any](items []T, size int) ([]T, bool) {
	if len(items) > size {
		return items[:size], true
	}
	return items, false
}

// SlicePage pages an in-memory slice, for stores that filter after the
// query. Pages past the end are empty with no next page.
func SlicePage[T any](items []T, p Page) (page []T, hasNext bool) {
	start := int(p.Skip())
	if start >= len(items) {
		return nil, false
	}
	end := start + p.Size
	if end >= len(items) {
		return items[start:], false
	}
	return items[start:end], true
}

// ClampFeedSize constrains the configured newsfeed page size to the
// supported range.
func ClampFeedSize(n int) int {
	if n < FeedSizeMin {
		return FeedSizeMin
	}
	if n > FeedSizeMax {
		return FeedSizeMax
	}
	return n
}
