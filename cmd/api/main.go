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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/config"
	dbpkg "github.com/BruksfildServices01/menu-sites/internal/db"
	"github.com/BruksfildServices01/menu-sites/internal/infra/cache"
	"github.com/BruksfildServices01/menu-sites/internal/infra/storage"
	"github.com/BruksfildServices01/menu-sites/internal/logging"
	"github.com/BruksfildServices01/menu-sites/internal/routes"
	"github.com/BruksfildServices01/menu-sites/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logging.New(os.Stdout, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing)
	if err != nil {
		log.Error("failed to start tracing", slog.Any("error", err))
		os.Exit(1)
	}

	db := dbpkg.NewDB(cfg)

	var aggCache *cache.AggregateRedisCache
	if cfg.Site.CacheTTL > 0 && cfg.Redis.URL != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			// the site still works uncached
			log.Warn("redis unavailable, aggregate cache disabled", slog.Any("error", err))
		} else {
			defer rdb.Close()
			aggCache = cache.NewAggregateRedisCache(rdb, cfg.Site.CacheTTL)
			log.Info("aggregate cache enabled", slog.Duration("ttl", cfg.Site.CacheTTL))
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := routes.NewRouter(routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Cache:   aggCache,
		Objects: storage.NewS3Store(cfg.Storage),
		Audit:   auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server running",
			slog.String("addr", cfg.Addr()),
			slog.String("root_domain", cfg.Tenancy.RootDomain),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	auditDispatcher.Close()
	shutdownTracing(shutdownCtx)
}
