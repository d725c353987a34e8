package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendlog-server/src/api"
	"spendlog-server/src/auth"
	"spendlog-server/src/config"
	"spendlog-server/src/db"
	store "spendlog-server/src/db/sql"
	"spendlog-server/src/handlers"
	"spendlog-server/src/services"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(pool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	cache, err := db.NewIdentityCache(cfg.IdentityCacheTTL)
	if err != nil {
		return err
	}
	defer cache.Close()

	st := store.NewStore(pool)
	router := api.NewRouter(api.Deps{
		Users:      services.NewUserService(st, auth.Bcrypt{}, cache),
		Categories: services.NewCategoryService(st),
		Expenses:   services.NewExpenseService(st, st, time.Now),
		Budgets:    services.NewBudgetService(st, st),
		Summary:    services.NewSummaryService(st, st, time.Now),
		Charts:     services.NewChartsService(st, st),

		Tokens:  auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Cookies: handlers.CookieConfig{Secure: cfg.CookieSecure, SameSite: cfg.SameSite()},
		Logger:  logger,

		CORSAllowAll: cfg.CORSAllowAll,
		CORSOrigins:  cfg.CORSOrigins,
		DemoMode:     cfg.DemoMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API server running", "port", cfg.Port, "demo_mode", cfg.DemoMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
