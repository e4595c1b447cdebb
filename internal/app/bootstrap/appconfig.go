// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging); AppConfig carries
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string
	MongoDatabase string

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Presentation
	SiteName string // shown in page titles and the RSS channel
	BaseURL  string // absolute base for links in the RSS feed

	// Newsfeed page size, clamped to the supported range at load time.
	FeedPageSize int

	// Room directory integration. An empty RoomsURL disables the
	// integration entirely; the directory then searches without rooms.
	RoomsURL             string
	RoomsRefreshInterval time.Duration
}
