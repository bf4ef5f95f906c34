package healthcheck

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

func TestProber_HTTPHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(logger.New("error"))
	result := prober.Check(context.Background(), port.ServiceSpec{
		Name:    "test-api",
		Type:    valueobject.CheckHTTP,
		URL:     server.URL,
		Timeout: 5 * time.Second,
	})

	if result == nil {
		t.Fatalf("expected non-nil result")
	}
	if !result.IsHealthy() {
		t.Fatalf("expected HEALTHY, got %s (%s)", result.Status(), result.ErrorMessage())
	}
	if result.HealthValue() != 1 {
		t.Fatalf("expected health value 1, got %f", result.HealthValue())
	}
}

func TestProber_HTTPErrorStatusUnhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	prober := NewProber(logger.New("error"))
	result := prober.Check(context.Background(), port.ServiceSpec{
		Name: "test-api",
		Type: valueobject.CheckHTTP,
		URL:  server.URL,
	})

	if result.IsHealthy() {
		t.Fatalf("expected UNHEALTHY for 503 response")
	}
	if result.ErrorMessage() == "" {
		t.Fatalf("expected error message for unhealthy result")
	}
}

func TestProber_HTTPTimeoutUnhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(logger.New("error"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	result := prober.Check(ctx, port.ServiceSpec{
		Name: "slow-api",
		Type: valueobject.CheckHTTP,
		URL:  server.URL,
	})

	if result.IsHealthy() {
		t.Fatalf("expected timeout to classify as UNHEALTHY")
	}
}

func TestProber_PortHealthy(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)

	prober := NewProber(logger.New("error"))
	result := prober.Check(context.Background(), port.ServiceSpec{
		Name: "tcp-service",
		Type: valueobject.CheckPort,
		Host: "127.0.0.1",
		Port: addr.Port,
	})

	if !result.IsHealthy() {
		t.Fatalf("expected HEALTHY for open port, got %s", result.ErrorMessage())
	}
}

func TestProber_PortClosedUnhealthy(t *testing.T) {
	// Открываем и сразу закрываем listener, чтобы получить гарантированно свободный порт
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := listener.Addr().(*net.TCPAddr)
	listener.Close()

	prober := NewProber(logger.New("error"))
	result := prober.Check(context.Background(), port.ServiceSpec{
		Name: "tcp-service",
		Type: valueobject.CheckPort,
		Host: "127.0.0.1",
		Port: addr.Port,
	})

	if result.IsHealthy() {
		t.Fatalf("expected UNHEALTHY for closed port")
	}
}

func TestProber_UnsupportedTypeUnhealthy(t *testing.T) {
	prober := NewProber(logger.New("error"))
	result := prober.Check(context.Background(), port.ServiceSpec{
		Name: "weird-service",
		Type: valueobject.CheckType("icmp"),
	})

	if result == nil {
		t.Fatalf("expected non-nil result for unsupported type")
	}
	if result.IsHealthy() {
		t.Fatalf("expected UNHEALTHY for unsupported check type")
	}
}
