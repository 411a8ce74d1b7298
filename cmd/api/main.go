package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/archivemon/internal/config"
	"github.com/hamed0406/archivemon/internal/httpapi"
	"github.com/hamed0406/archivemon/internal/logging"
	"github.com/hamed0406/archivemon/internal/probe"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/repo"
	"github.com/hamed0406/archivemon/internal/repo/memory"
	"github.com/hamed0406/archivemon/internal/repo/postgres"
	"github.com/hamed0406/archivemon/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg := registry.Default()
	if cfg.EndpointsFile != "" {
		eps, err := config.LoadEndpoints(cfg.EndpointsFile)
		if err != nil {
			logger.Fatal("endpoints_load_error", zap.Error(err))
		}
		reg, err = registry.New(eps)
		if err != nil {
			logger.Fatal("endpoints_invalid", zap.Error(err))
		}
	}

	ctx := context.Background()

	var store repo.ObservationStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres_connect_error", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("postgres_schema_error", zap.Error(err))
		}
		store = pg
		logger.Info("store_postgres")
	} else {
		store = memory.New()
		logger.Info("store_memory")
	}

	prober := probe.NewHTTPProber(cfg.ProbeTimeout)
	runner := scheduler.NewRunner(logger, reg, store, prober, cfg.ProbeTimeout, cfg.MaxConcurrentChecks)
	if cfg.CheckInterval > 0 {
		go runner.Loop(ctx, cfg.CheckInterval)
	}

	api := httpapi.NewServer(logger, reg, store, runner)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.Int("endpoints", reg.Len()),
		zap.Duration("check_interval", cfg.CheckInterval),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router(cfg.AdminAPIKeys)); err != nil {
		log.Fatal(err)
	}
}
