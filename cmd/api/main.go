package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/datapulse/dataplatform-backend/api/routes"
	"github.com/datapulse/dataplatform-backend/internal/analytics"
	"github.com/datapulse/dataplatform-backend/internal/dataset"
	"github.com/datapulse/dataplatform-backend/pkg/config"
	"github.com/datapulse/dataplatform-backend/pkg/db"
	"github.com/datapulse/dataplatform-backend/pkg/logger"
	"github.com/datapulse/dataplatform-backend/pkg/metrics"
	"github.com/datapulse/dataplatform-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var dbPinger db.Pinger
	var provider dataset.Provider

	if cfg.Data.IsCSV() {
		// A failed load is not fatal: the service stays up and answers
		// 503 on report endpoints until restarted with valid data.
		snap, err := dataset.LoadDir(cfg.Data.Dir)
		if err != nil {
			ctx := logg.WithField(context.Background(), "dir", cfg.Data.Dir)
			logg.Error(ctx, "failed to load csv dataset", err)
		}
		provider = dataset.NewStatic(snap)
	} else {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		dbPinger = dbClient

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}

		snap, err := dataset.NewRepository(dbClient.DB()).Load(context.Background())
		if err != nil {
			logg.Error(context.Background(), "failed to load dataset from database", err)
		}
		provider = dataset.NewStatic(snap)
	}

	analyticsService, err := analytics.NewService(provider, logg, cfg.Churn)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"data_source": cfg.Data.Source,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, httpMetrics, registry, dbPinger, provider, analyticsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
