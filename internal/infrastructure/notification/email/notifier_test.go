package email

import (
	"context"
	"errors"
	"io"
	"net"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/config"
)

func testEvent(t *testing.T, kind port.AlertEventKind) port.AlertEvent {
	t.Helper()
	alert, err := entity.NewAlert(
		"high_cpu_usage_cpu.usage",
		"high_cpu_usage",
		valueobject.SeverityWarning,
		"High CPU usage detected",
		"cpu.usage",
		92.5,
		85,
		"test-host",
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewAlert() error = %v", err)
	}
	return port.AlertEvent{
		Kind:      kind,
		Alert:     alert,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Hostname:  "test-host",
	}
}

func testConfig() config.EmailChannelConfig {
	return config.EmailChannelConfig{
		Enabled:    true,
		Host:       "smtp.example.com",
		Port:       "587",
		From:       "monitoring@example.com",
		Recipients: []string{"ops@example.com", "oncall@example.com"},
	}
}

func TestEmailNotifier_SubjectAndRecipients(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string

	notifier := NewNotifier(testConfig())
	notifier.send = func(_ context.Context, addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	if err := notifier.Send(context.Background(), testEvent(t, port.AlertEventCreated)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected smtp address: %s", gotAddr)
	}
	if gotFrom != "monitoring@example.com" {
		t.Fatalf("unexpected sender: %s", gotFrom)
	}
	if len(gotTo) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(gotTo))
	}
	if !strings.Contains(gotMsg, "Subject: [WARNING] Monitoring Alert: high_cpu_usage") {
		t.Fatalf("unexpected subject in message:\n%s", gotMsg)
	}
	if !strings.Contains(gotMsg, "Current value: 92.50") {
		t.Fatalf("expected value in body:\n%s", gotMsg)
	}
}

func TestEmailNotifier_ResolvedSubject(t *testing.T) {
	var gotMsg string

	notifier := NewNotifier(testConfig())
	notifier.send = func(_ context.Context, _ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	if err := notifier.Send(context.Background(), testEvent(t, port.AlertEventResolved)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if !strings.Contains(gotMsg, "Subject: [WARNING] Monitoring Alert Resolved: high_cpu_usage") {
		t.Fatalf("unexpected resolved subject:\n%s", gotMsg)
	}
}

func TestEmailNotifier_SMTPFailure(t *testing.T) {
	notifier := NewNotifier(testConfig())
	notifier.send = func(_ context.Context, _ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		return errors.New("connection refused")
	}

	if err := notifier.Send(context.Background(), testEvent(t, port.AlertEventCreated)); err == nil {
		t.Fatalf("expected error when smtp delivery fails")
	}
}

func TestEmailNotifier_ContextTimeout(t *testing.T) {
	notifier := NewNotifier(testConfig())
	notifier.send = func(ctx context.Context, _ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := notifier.Send(ctx, testEvent(t, port.AlertEventCreated)); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestSendMail_DeadlineAbortsStalledServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer ln.Close()

	// Сервер принимает соединение, но не присылает SMTP greeting
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(io.Discard, conn)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sendMail(ctx, ln.Addr().String(), nil, "monitoring@example.com",
		[]string{"ops@example.com"}, []byte("test"))
	if err == nil {
		t.Fatalf("expected error for stalled smtp server")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expected context deadline to abort delivery, took %s", elapsed)
	}
}
