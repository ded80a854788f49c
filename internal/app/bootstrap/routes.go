// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/mentorhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/mentorhub/internal/app/features/health"
	homefeature "github.com/dalemusser/mentorhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/mentorhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/mentorhub/internal/app/features/logout"
	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	eventstore "github.com/dalemusser/mentorhub/internal/app/store/events"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/acceptance"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It initializes the session store and
// template engine, builds the shared collaborators (stores, audit logger,
// acceptance tracker), and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.MongoDatabase
	users := userstore.New(db)
	events := eventstore.New(db)

	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	var blockKey []byte
	if appCfg.SnapshotBlockKey != "" {
		blockKey = []byte(appCfg.SnapshotBlockKey)
	}
	snapshots := acceptance.NewSnapshotStore([]byte(appCfg.SnapshotHashKey), blockKey, secure)
	tracker := acceptance.NewTracker(snapshots, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root redirect
	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, audit, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Event workflow: list/detail, mentor requests, staff decisions,
	// assignments, and event CRUD.
	eventsHandler := eventsfeature.NewHandler(db, events, users, tracker, audit, errLog, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	return r, nil
}
