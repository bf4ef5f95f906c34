package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

func testAlert(t *testing.T) *entity.Alert {
	t.Helper()
	alert, err := entity.NewAlert(
		"high_cpu_usage_cpu.usage",
		"high_cpu_usage",
		valueobject.SeverityCritical,
		"High CPU usage detected",
		"cpu.usage",
		97.3,
		85,
		"test-host",
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewAlert() error = %v", err)
	}
	return alert
}

func TestConsoleNotifier_AlertLine(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewNotifierWithWriter(&buf)

	event := port.AlertEvent{
		Kind:      port.AlertEventCreated,
		Alert:     testAlert(t),
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Hostname:  "test-host",
	}

	if err := notifier.Send(context.Background(), event); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "ALERT [CRITICAL] high_cpu_usage") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "value: 97.30") {
		t.Fatalf("expected current value in line, got %q", line)
	}
	if !strings.Contains(line, "threshold: 85.00") {
		t.Fatalf("expected threshold in line, got %q", line)
	}
}

func TestConsoleNotifier_ResolvedLine(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewNotifierWithWriter(&buf)

	event := port.AlertEvent{
		Kind:      port.AlertEventResolved,
		Alert:     testAlert(t),
		Timestamp: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		Hostname:  "test-host",
	}

	if err := notifier.Send(context.Background(), event); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "RESOLVED [CRITICAL] high_cpu_usage") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, "threshold:") {
		t.Fatalf("resolved line should not repeat threshold, got %q", line)
	}
}
