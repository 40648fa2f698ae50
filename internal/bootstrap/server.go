package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/api"
	"github.com/pointsolution/docbooking/config"
	"github.com/pointsolution/docbooking/internal/metrics"
	"github.com/pointsolution/docbooking/internal/service/admin"
	"github.com/pointsolution/docbooking/internal/service/auth"
	"github.com/pointsolution/docbooking/internal/service/catalog"
	"github.com/pointsolution/docbooking/internal/service/workflow"
	"github.com/pointsolution/docbooking/internal/session"
	"github.com/pointsolution/docbooking/internal/upstream"
)

type Services struct {
	Auth     auth.AuthUseCase
	Catalog  catalog.CatalogUseCase
	Workflow workflow.WorkflowUseCase
	Admin    admin.AdminUseCase
	Probe    api.HealthProbe
	Sessions session.Store
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Run starts the gateway HTTP server and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svcs Services) error {
	httpSrv := newServer(cfg, svcs)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	svcs.Logger.Info("gateway listening", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, svcs Services) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(api.Observe(svcs.Metrics))

	api.SetSessionCookieName(cfg.Session.Name())
	engine.Use(api.Sessions(svcs.Sessions))

	root := engine.Group("/api")
	api.NewHealthHandler(svcs.Probe).Register(root)
	api.NewAuthHandler(svcs.Auth, cfg.Session.TTL()).Register(root)
	api.NewCatalogHandler(svcs.Catalog).Register(root)
	api.NewBookingHandler(svcs.Workflow).Register(root)

	adminGroup := root.Group("/admin", api.RequireAdmin())
	api.NewAdminBookingHandler(svcs.Admin).Register(adminGroup)
	api.NewAdminUserHandler(svcs.Admin).Register(adminGroup)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/gateway.swagger.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
}

// NewUpstreamClient wires the API client with the central 401 interceptor:
// stored credentials are cleared once, and the caller is redirected to login
// by the response layer.
func NewUpstreamClient(cfg *config.Config, store session.Store, m *metrics.Metrics, logger *zap.Logger) *upstream.Client {
	return upstream.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout(),
		cfg.Upstream.AdminTimeout(),
		logger,
		upstream.WithResultHook(func(outcome string) {
			if m != nil {
				m.UpstreamRequests.WithLabelValues(outcome).Inc()
			}
		}),
		upstream.WithUnauthorizedHook(func(ctx context.Context) {
			id := session.IDFrom(ctx)
			if id == "" {
				return
			}
			if err := store.Delete(ctx, id); err != nil {
				logger.Warn("failed to tear down session", zap.Error(err))
				return
			}
			if m != nil {
				m.SessionTeardowns.Inc()
			}
			logger.Info("session torn down after 401", zap.String("session", id))
		}),
	)
}
