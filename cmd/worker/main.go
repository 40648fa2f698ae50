package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/config"
	"github.com/pointsolution/docbooking/internal/metrics"
	"github.com/pointsolution/docbooking/internal/upstream"
)

// The worker probes the upstream API's health endpoint on an interval and
// exposes the result as metrics, so an unreachable backend is visible before
// users hit it.
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

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), cfg.Upstream.AdminTimeout(), logger)

	metricsAddr := cfg.Worker.MetricsAddress
	if metricsAddr == "" {
		metricsAddr = ":9091"
	}
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	interval := time.Duration(cfg.Worker.ProbeIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	logger.Info("connectivity probe started",
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe(ctx, client, m, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info("connectivity probe stopped")
			return
		case <-ticker.C:
			probe(ctx, client, m, logger)
		}
	}
}

func probe(ctx context.Context, client *upstream.Client, m *metrics.Metrics, logger *zap.Logger) {
	start := time.Now()
	err := client.Health(ctx)
	m.ProbeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		m.UpstreamReachable.Set(0)
		logger.Warn("upstream unreachable", zap.Error(err))
		return
	}
	m.UpstreamReachable.Set(1)
}
