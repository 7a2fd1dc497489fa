package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/conduitlabs/conduit/internal/conduit/cache"
	"github.com/conduitlabs/conduit/internal/conduit/captcha"
	httpapi "github.com/conduitlabs/conduit/internal/conduit/http"
	"github.com/conduitlabs/conduit/internal/conduit/mailer"
	"github.com/conduitlabs/conduit/internal/conduit/moderator"
	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/internal/conduit/store/drivers/postgres"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/conduitlabs/conduit/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	cache *cache.Cache // nil when no Redis is configured
	codec *jwtx.Codec

	// Services
	userService         *service.UserService
	profileService      *service.ProfileService
	articleService      *service.ArticleService
	commentService      *service.CommentService
	moderationService   *service.ModerationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "conduit-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := jwtx.NewCodec(cfg.JWTSecret, jwtx.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("conduit api starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down conduit api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close the verdict cache
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing cache", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("conduit api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := postgres.NewStore(context.Background(), app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects the moderation verdict cache. The cache is optional so a
// missing Redis URL is not an error.
func (app *Application) initCache() error {
	if app.cfg.RedisURL == "" {
		app.logger.Info("no redis url configured, moderation verdict cache disabled")
		return nil
	}

	c, err := cache.New(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	app.cache = c
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	var mail mailer.Mailer
	if app.cfg.ResendAPIKey != "" {
		mail = mailer.NewResendMailer(app.cfg.ResendAPIKey, app.cfg.MailSender, app.logger)
	} else {
		mail = mailer.NewStdoutMailer(app.logger)
		app.logger.Info("no resend api key configured, confirmation emails log to stdout")
	}

	app.moderationService = &service.ModerationService{
		Moderator: moderator.New(app.cfg.OpenAIAPIKey),
		Skip:      app.cfg.SkipModeration,
		Logger:    app.logger,
	}
	// Assign only a non-nil cache so the interface stays nil without Redis.
	if app.cache != nil {
		app.moderationService.Cache = app.cache
	}

	app.userService = &service.UserService{
		Store:                 app.db,
		Mailer:                mail,
		Logger:                app.logger,
		SkipEmailVerification: app.cfg.SkipEmailVerification,
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.articleService = &service.ArticleService{
		Store:      app.db,
		Moderation: app.moderationService,
	}
	app.commentService = &service.CommentService{
		Store:      app.db,
		Moderation: app.moderationService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.ProfileService = app.profileService
	router.ArticleService = app.articleService
	router.CommentService = app.commentService
	router.Captcha = captcha.NewVerifier(app.cfg.TurnstileSecret)
	router.SkipCaptcha = app.cfg.SkipCaptcha
	router.SkipRateLimiting = app.cfg.SkipRateLimiting
	router.ApplyRoutes()

	app.router = router

	corsMiddleware, err := httpx.CORS(app.cfg.CORSAllowedOrigins)
	if err != nil {
		return fmt.Errorf("failed to compile cors origins: %w", err)
	}

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           corsMiddleware(gzhttp.GzipHandler(router)),
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
