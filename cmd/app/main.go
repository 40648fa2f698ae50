package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/config"
	"github.com/pointsolution/docbooking/internal/bootstrap"
	"github.com/pointsolution/docbooking/internal/cache"
	"github.com/pointsolution/docbooking/internal/metrics"
	"github.com/pointsolution/docbooking/internal/service/admin"
	"github.com/pointsolution/docbooking/internal/service/auth"
	"github.com/pointsolution/docbooking/internal/service/catalog"
	"github.com/pointsolution/docbooking/internal/service/workflow"
	"github.com/pointsolution/docbooking/internal/session"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()

	sessions := session.NewRedisStore(cfg.Redis, cfg.Session.TTL())
	catalogCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)

	client := bootstrap.NewUpstreamClient(cfg, sessions, m, logger)

	svcs := bootstrap.Services{
		Auth:     auth.NewAuthService(client, sessions, logger),
		Catalog:  catalog.NewCatalogService(client, catalogCache, logger),
		Workflow: workflow.NewWorkflowService(client, sessions, m.BookingsSubmitted, logger),
		Admin:    admin.NewAdminService(client, sessions, logger),
		Probe:    client,
		Sessions: sessions,
		Metrics:  m,
		Logger:   logger,
	}

	if err := bootstrap.Run(ctx, cfg, svcs); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
