package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/player2player/navmenu/internal/auth"
	"github.com/player2player/navmenu/internal/booking"
	"github.com/player2player/navmenu/internal/config"
	"github.com/player2player/navmenu/internal/handler"
	"github.com/player2player/navmenu/internal/logging"
	"github.com/player2player/navmenu/internal/middleware"
	"github.com/player2player/navmenu/internal/module"
	"github.com/player2player/navmenu/internal/service"
	"github.com/player2player/navmenu/internal/session"
	"github.com/player2player/navmenu/internal/store"
	"github.com/player2player/navmenu/modules/bookingmenu"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "navmenu - booking-aware navigation menu service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVMENU_BOOKING_DSN           Booking store MySQL DSN (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVMENU_BOOKING_TABLE_PREFIX  Booking table prefix (default: wp_amelia_)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVMENU_DB_PATH               SQLite database path (default: ./data/navmenu.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVMENU_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVMENU_MENU_LOCATION         Augmented menu location (default: primary-menu)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("navmenu %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Connect to the external booking store
	slog.Info("connecting to booking store", "table_prefix", cfg.BookingTablePrefix)
	bookingReader, err := booking.NewReader(cfg.BookingDSN, cfg.BookingTablePrefix)
	if err != nil {
		return fmt.Errorf("connecting to booking store: %w", err)
	}
	defer func() {
		if err := bookingReader.Close(); err != nil {
			slog.Error("error closing booking store connection", "error", err)
		}
	}()

	// Sessions and the current-user boundary
	sm := session.New(db, cfg.IsDevelopment())
	users := auth.NewUsers(sm)

	// Hooks and modules: modules are constructed and registered
	// explicitly here, nothing registers itself behind the scenes.
	hooks := module.NewHookRegistry(logger)
	moduleRegistry := module.NewRegistry(logger)
	if err := moduleRegistry.Register(bookingmenu.New()); err != nil {
		return fmt.Errorf("registering modules: %w", err)
	}
	if err := moduleRegistry.InitAll(&module.Context{
		DB:      db,
		Store:   store.New(db),
		Booking: bookingReader,
		Logger:  logger,
		Config:  cfg,
		Hooks:   hooks,
	}); err != nil {
		return fmt.Errorf("initializing modules: %w", err)
	}
	defer moduleRegistry.ShutdownAll()

	menus := service.NewMenuService(db, hooks)
	menuHandler := handler.NewMenuHandler(menus, users, logger)
	authHandler := handler.NewAuthHandler(users, logger)
	healthHandler := handler.NewHealthHandler(db)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sm.LoadAndSave)

	r.Get("/health", healthHandler.Health)
	r.Get("/logout", authHandler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Get("/api/menu/{location}", menuHandler.Get)
	})
	moduleRegistry.RegisterAllRoutes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
