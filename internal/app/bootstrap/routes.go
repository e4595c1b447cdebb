// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	directoryfeature "github.com/quorumhq/quorum/internal/app/features/directory"
	errorsfeature "github.com/quorumhq/quorum/internal/app/features/errors"
	feedsfeature "github.com/quorumhq/quorum/internal/app/features/feeds"
	healthfeature "github.com/quorumhq/quorum/internal/app/features/health"
	loginfeature "github.com/quorumhq/quorum/internal/app/features/login"
	logoutfeature "github.com/quorumhq/quorum/internal/app/features/logout"
	newsfeedfeature "github.com/quorumhq/quorum/internal/app/features/newsfeed"
	workgroupsfeature "github.com/quorumhq/quorum/internal/app/features/workgroups"
	userstore "github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/quorumhq/quorum/internal/app/system/rooms"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, the DB connection, schema
// setup, and the Startup hook have completed. The workgroup slug routes
// live at the top level of the URL space, so every feature registers
// onto the one root router; chi gives literal segments priority over
// the {slug} parameter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so
	// profile changes take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Boot the template engine once at startup. Dev mode enables
	// template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// Room directory integration; nil refresher when disabled.
	var refresher *rooms.Refresher
	if appCfg.RoomsURL != "" {
		dir := &rooms.HTTPDirectory{URL: appCfg.RoomsURL}
		refresher = rooms.NewRefresher(dir, userstore.NewStore(deps.MongoDatabase), appCfg.RoomsRefreshInterval, logger)
		logger.Info("room directory integration enabled",
			zap.String("url", appCfg.RoomsURL),
			zap.Duration("interval", appCfg.RoomsRefreshInterval))
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoDatabase, logger)
	healthHandler.Register(r)

	// Static assets with pre-compressed file support.
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, logger)
	loginHandler.Register(r)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	logoutHandler.Register(r)

	newsfeedHandler := newsfeedfeature.NewHandler(deps.MongoDatabase, errLog, logger, appCfg.FeedPageSize)
	newsfeedHandler.Register(r, sessionMgr)

	directoryHandler := directoryfeature.NewHandler(deps.MongoDatabase, refresher, errLog, logger)
	r.Route("/directory", func(dr chi.Router) {
		dr.Use(sessionMgr.RequireSignedIn)
		directoryHandler.MountRoutes(dr)
	})

	feedsHandler := feedsfeature.NewHandler(deps.MongoDatabase, errLog, logger, appCfg.SiteName, appCfg.BaseURL)
	r.Group(func(fr chi.Router) {
		fr.Use(sessionMgr.RequireSignedIn)
		fr.Get("/feeds/latest", feedsHandler.Latest)
	})

	// Registered last: these include the {slug} routes that would
	// otherwise shadow literal paths.
	workgroupsHandler := workgroupsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	workgroupsHandler.Register(r, sessionMgr)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
