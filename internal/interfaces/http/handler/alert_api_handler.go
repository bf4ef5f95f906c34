package handler

import (
	"net/http"

	"github.com/dreschagin/monitoring-engine/internal/application/usecase"
	"github.com/dreschagin/monitoring-engine/internal/interfaces/http/middleware"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// AlertAPIHandler обрабатывает API запросы для алертов
type AlertAPIHandler struct {
	getActiveAlertsUC  *usecase.GetActiveAlertsUseCase
	acknowledgeAlertUC *usecase.AcknowledgeAlertUseCase
	logger             *logger.Logger
}

// NewAlertAPIHandler создает новый handler
func NewAlertAPIHandler(
	getActiveAlertsUC *usecase.GetActiveAlertsUseCase,
	acknowledgeAlertUC *usecase.AcknowledgeAlertUseCase,
	logger *logger.Logger,
) *AlertAPIHandler {
	return &AlertAPIHandler{
		getActiveAlertsUC:  getActiveAlertsUC,
		acknowledgeAlertUC: acknowledgeAlertUC,
		logger:             logger,
	}
}

// GetActiveAlerts возвращает текущие ACTIVE алерты
func (h *AlertAPIHandler) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	alerts := h.getActiveAlertsUC.Execute(r.Context())

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// AcknowledgeAlert помечает ACTIVE алерт подтвержденным
func (h *AlertAPIHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	alertID := r.PathValue("id")
	if alertID == "" {
		http.Error(w, "Missing alert id", http.StatusBadRequest)
		return
	}

	alert, err := h.acknowledgeAlertUC.Execute(r.Context(), alertID)
	if err != nil {
		h.logger.Warn("Acknowledge failed", "alert_id", alertID, "error", err.Error())
		http.Error(w, "Alert not found or not active", http.StatusNotFound)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, alert)
}
