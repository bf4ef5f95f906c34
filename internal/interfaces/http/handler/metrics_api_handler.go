package handler

import (
	"net/http"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/usecase"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/middleware"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// MetricsAPIHandler обрабатывает API запросы для метрик
type MetricsAPIHandler struct {
	getRecentMetricsUC *usecase.GetRecentMetricsUseCase
	maxWindow          time.Duration
	logger             *logger.Logger
}

// NewMetricsAPIHandler создает новый handler
func NewMetricsAPIHandler(
	getRecentMetricsUC *usecase.GetRecentMetricsUseCase,
	maxWindow time.Duration,
	logger *logger.Logger,
) *MetricsAPIHandler {
	if maxWindow <= 0 {
		maxWindow = 24 * time.Hour
	}

	return &MetricsAPIHandler{
		getRecentMetricsUC: getRecentMetricsUC,
		maxWindow:          maxWindow,
		logger:             logger,
	}
}

// GetRecentMetrics возвращает оконную выборку метрики с агрегатами
func (h *MetricsAPIHandler) GetRecentMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Получаем параметры из query string
	name := r.URL.Query().Get("name")
	windowStr := r.URL.Query().Get("window")

	if name == "" {
		http.Error(w, "Missing required parameter: name", http.StatusBadRequest)
		return
	}
	if windowStr == "" {
		windowStr = "1h"
	}

	window, err := time.ParseDuration(windowStr)
	if err != nil {
		http.Error(w, "Invalid window format", http.StatusBadRequest)
		return
	}
	if window <= 0 || window > h.maxWindow {
		http.Error(w, "Window out of allowed range", http.StatusBadRequest)
		return
	}

	result, err := h.getRecentMetricsUC.Execute(r.Context(), name, window, time.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to get recent metrics", err, "name", name)
		http.Error(w, "Failed to fetch metrics", http.StatusInternalServerError)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}
