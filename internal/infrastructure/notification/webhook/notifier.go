package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/pkg/config"
)

// Payload — тело POST запроса вебхука
type Payload struct {
	AlertType string        `json:"alert_type"`
	Severity  string        `json:"severity"`
	RuleName  string        `json:"rule_name"`
	Message   string        `json:"message"`
	Metric    PayloadMetric `json:"metric"`
	Timestamp string        `json:"timestamp"`
	Hostname  string        `json:"hostname"`
}

// PayloadMetric — вложенный блок метрики в payload
type PayloadMetric struct {
	Name         string  `json:"name"`
	CurrentValue float64 `json:"current_value"`
	Threshold    float64 `json:"threshold"`
}

// Notifier доставляет уведомления HTTP POST запросом
type Notifier struct {
	cfg    config.WebhookChannelConfig
	client *http.Client
}

// NewNotifier создает webhook notifier
func NewNotifier(cfg config.WebhookChannelConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		// Таймаут доставки несет ctx от dispatcher'а
		client: &http.Client{},
	}
}

// Name возвращает имя канала
func (n *Notifier) Name() string {
	return "webhook"
}

// Send отправляет JSON payload на сконфигурированный URL.
// Ответ с кодом вне 2xx считается ошибкой доставки
func (n *Notifier) Send(ctx context.Context, event port.AlertEvent) error {
	alert := event.Alert

	payload := Payload{
		AlertType: "monitoring",
		Severity:  alert.Severity().String(),
		RuleName:  alert.RuleName(),
		Message:   alert.Message(),
		Metric: PayloadMetric{
			Name:         alert.Metric(),
			CurrentValue: alert.CurrentValue(),
			Threshold:    alert.ThresholdValue(),
		},
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Hostname:  event.Hostname,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range n.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
