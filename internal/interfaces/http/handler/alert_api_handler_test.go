package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/application/usecase"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

type noopAlertRepository struct{}

func (noopAlertRepository) Save(_ context.Context, _ *entity.Alert) error   { return nil }
func (noopAlertRepository) Update(_ context.Context, _ *entity.Alert) error { return nil }
func (noopAlertRepository) FindActive(_ context.Context) ([]*entity.Alert, error) {
	return nil, nil
}
func (noopAlertRepository) DeleteResolvedOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newAlertHandlerFixture(t *testing.T) (*AlertAPIHandler, *service.AlertRegistry) {
	t.Helper()
	registry := service.NewAlertRegistry()
	h := NewAlertAPIHandler(
		usecase.NewGetActiveAlertsUseCase(registry),
		usecase.NewAcknowledgeAlertUseCase(registry, noopAlertRepository{}, logger.New("error")),
		logger.New("error"),
	)
	return h, registry
}

func seedAlert(t *testing.T, registry *service.AlertRegistry) string {
	t.Helper()
	trigger := service.RuleTrigger{
		AlertID:      "high_cpu_usage_cpu.usage",
		RuleName:     "high_cpu_usage",
		Severity:     valueobject.SeverityWarning,
		Metric:       "cpu.usage",
		CurrentValue: 92,
		Threshold:    85,
		Message:      "High CPU usage detected",
		Source:       "test-host",
	}
	if _, _, err := registry.Upsert(trigger, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	return trigger.AlertID
}

func TestAlertAPIHandler_GetActiveAlerts(t *testing.T) {
	h, registry := newAlertHandlerFixture(t)
	seedAlert(t, registry)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active", nil)
	rec := httptest.NewRecorder()
	h.GetActiveAlerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Alerts []*dto.AlertDTO `json:"alerts"`
		Count  int             `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 1 || len(body.Alerts) != 1 {
		t.Fatalf("expected one alert, got count=%d", body.Count)
	}
	if body.Alerts[0].AlertID != "high_cpu_usage_cpu.usage" {
		t.Fatalf("unexpected alert id: %s", body.Alerts[0].AlertID)
	}
	if body.Alerts[0].Status != "ACTIVE" {
		t.Fatalf("unexpected status: %s", body.Alerts[0].Status)
	}
}

func TestAlertAPIHandler_GetActiveAlertsMethodNotAllowed(t *testing.T) {
	h, _ := newAlertHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/active", nil)
	rec := httptest.NewRecorder()
	h.GetActiveAlerts(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestAlertAPIHandler_AcknowledgeAlert(t *testing.T) {
	h, registry := newAlertHandlerFixture(t)
	alertID := seedAlert(t, registry)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/alerts/{id}/ack", h.AcknowledgeAlert)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/"+alertID+"/ack", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var alert dto.AlertDTO
	if err := json.NewDecoder(rec.Body).Decode(&alert); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !alert.Acknowledged {
		t.Fatalf("expected acknowledged alert in response")
	}
}

func TestAlertAPIHandler_AcknowledgeUnknownAlert(t *testing.T) {
	h, _ := newAlertHandlerFixture(t)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/alerts/{id}/ack", h.AcknowledgeAlert)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/nonexistent/ack", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown alert, got %d", rec.Code)
	}
}
