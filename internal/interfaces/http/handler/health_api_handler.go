package handler

import (
	"net/http"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/usecase"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/middleware"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// HealthAPIHandler обрабатывает API запросы для состояния сервисов
type HealthAPIHandler struct {
	getServiceHealthUC *usecase.GetServiceHealthUseCase
	logger             *logger.Logger
}

// NewHealthAPIHandler создает новый handler
func NewHealthAPIHandler(
	getServiceHealthUC *usecase.GetServiceHealthUseCase,
	logger *logger.Logger,
) *HealthAPIHandler {
	return &HealthAPIHandler{
		getServiceHealthUC: getServiceHealthUC,
		logger:             logger,
	}
}

// GetServiceHealth возвращает сводку состояния всех сервисов
func (h *HealthAPIHandler) GetServiceHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	services, err := h.getServiceHealthUC.Execute(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to get service health", err)
		http.Error(w, "Failed to fetch service health", http.StatusInternalServerError)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"services": services,
		"count":    len(services),
	})
}
