// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Quorum.
// They are loaded via WAFFLE's config system, so each is available as a
// config-file entry, a QUORUM_* environment variable, or a flag.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "quorum", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "quorum-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "site_name", Default: "Quorum", Desc: "Site name shown in page titles"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for links in feeds"},

	{Name: "feed_page_size", Default: paging.FeedSizeDefault, Desc: "Newsfeed page size (clamped to 5-8)"},

	// Room directory integration
	{Name: "rooms_url", Default: "", Desc: "Room directory JSON endpoint (blank disables the integration)"},
	{Name: "rooms_refresh_interval", Default: "168h", Desc: "Minimum interval between room refreshes (e.g., 168h for weekly)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "QUORUM", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	refreshInterval, err := time.ParseDuration(appValues.String("rooms_refresh_interval"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid rooms_refresh_interval: %w", err)
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		SiteName: appValues.String("site_name"),
		BaseURL:  appValues.String("base_url"),

		FeedPageSize: paging.ClampFeedSize(appValues.Int("feed_page_size")),

		RoomsURL:             appValues.String("rooms_url"),
		RoomsRefreshInterval: refreshInterval,
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.RoomsRefreshInterval <= 0 {
		return fmt.Errorf("rooms_refresh_interval must be positive")
	}
	return nil
}
