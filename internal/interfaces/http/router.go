package http

import (
	"net/http"

	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/handler"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/middleware"
	"github.com/dreschagin/monitoring-engine/pkg/config"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Router настраивает маршруты приложения
type Router struct {
	mux              *http.ServeMux
	alertAPIHandler  *handler.AlertAPIHandler
	metricsAPI       *handler.MetricsAPIHandler
	healthAPIHandler *handler.HealthAPIHandler
	websocketHandler *handler.WebSocketHandler
	security         config.SecurityConfig
	rateLimiter      *middleware.IPRateLimiter
	logger           *logger.Logger
}

// NewRouter создает новый router
func NewRouter(
	alertAPIHandler *handler.AlertAPIHandler,
	metricsAPI *handler.MetricsAPIHandler,
	healthAPIHandler *handler.HealthAPIHandler,
	websocketHandler *handler.WebSocketHandler,
	security config.SecurityConfig,
	rateLimiter *middleware.IPRateLimiter,
	logger *logger.Logger,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		alertAPIHandler:  alertAPIHandler,
		metricsAPI:       metricsAPI,
		healthAPIHandler: healthAPIHandler,
		websocketHandler: websocketHandler,
		security:         security,
		rateLimiter:      rateLimiter,
		logger:           logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	// Health endpoint is intentionally unauthenticated for probes.
	rt.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Enabled:     rt.security.AuthEnabled,
		BearerToken: rt.security.AuthToken,
	}, rt.logger)

	// WebSocket
	rt.mux.Handle("/ws", authMiddleware(http.HandlerFunc(rt.websocketHandler.HandleConnection)))

	// API endpoints
	rt.mux.Handle("/api/v1/alerts/active", authMiddleware(http.HandlerFunc(rt.alertAPIHandler.GetActiveAlerts)))
	rt.mux.Handle("POST /api/v1/alerts/{id}/ack", authMiddleware(http.HandlerFunc(rt.alertAPIHandler.AcknowledgeAlert)))
	rt.mux.Handle("/api/v1/metrics/recent", authMiddleware(http.HandlerFunc(rt.metricsAPI.GetRecentMetrics)))
	rt.mux.Handle("/api/v1/health/services", authMiddleware(http.HandlerFunc(rt.healthAPIHandler.GetServiceHealth)))

	// Применяем middleware
	var h http.Handler = rt.mux
	if rt.rateLimiter != nil {
		h = middleware.RateLimit(rt.rateLimiter)(h)
	}
	h = middleware.Logger(rt.logger)(h)
	h = middleware.Recovery(rt.logger)(h)

	return h
}
