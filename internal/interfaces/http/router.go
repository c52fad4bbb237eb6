// Package http exposes the webhook endpoint, the inspection API and the
// operational endpoints over gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userbot/internal/infrastructure/metrics"
	"userbot/internal/interfaces/http/handlers"
	telegramHandlers "userbot/internal/interfaces/http/handlers/telegram"
	"userbot/internal/interfaces/http/middleware"
	sharedConfig "userbot/internal/shared/config"
	"userbot/internal/shared/logger"
)

// RouterDeps are the handlers and collaborators the router mounts.
// Webhook is nil unless the bot runs in webhook mode.
type RouterDeps struct {
	Subscriptions *handlers.SubscriptionHandler
	Health        *handlers.HealthHandler
	Webhook       *telegramHandlers.Handler
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Logger        logger.Interface
}

// Router represents the HTTP router configuration
type Router struct {
	engine *gin.Engine
	server *http.Server
	logger logger.Interface
}

func NewRouter(cfg sharedConfig.ServerConfig, deps RouterDeps) *Router {
	gin.SetMode(cfg.Mode)
	engine := gin.New()

	engine.Use(middleware.Recovery(deps.Logger))
	engine.Use(middleware.Logger(deps.Logger))
	engine.Use(deps.Metrics.GinMiddleware("/healthz", "/metrics"))

	engine.GET("/healthz", deps.Health.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	if deps.Webhook != nil {
		engine.POST("/telegram/webhook", deps.Webhook.HandleWebhook)
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/subscriptions/inspect", deps.Subscriptions.Inspect)
	}

	return &Router{
		engine: engine,
		server: &http.Server{
			Addr:              cfg.GetAddr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Handler returns the gin engine as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not an
// error.
func (r *Router) ListenAndServe() error {
	r.logger.Infow("HTTP server listening", "addr", r.server.Addr)
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
