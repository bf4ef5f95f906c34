package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

func protectedHandler(t *testing.T, cfg AuthConfig) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Auth(cfg, logger.New("error"))(next)
}

func TestAuth_DisabledAllowsAll(t *testing.T) {
	h := protectedHandler(t, AuthConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", rec.Code)
	}
}

func TestAuth_ValidBearerToken(t *testing.T) {
	h := protectedHandler(t, AuthConfig{Enabled: true, BearerToken: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", rec.Code)
	}
}

func TestAuth_RejectsInvalidOrMissingToken(t *testing.T) {
	h := protectedHandler(t, AuthConfig{Enabled: true, BearerToken: "secret"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token", "Bearer wrong"},
		{"wrong scheme", "Basic secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatalf("expected WWW-Authenticate header on 401")
			}
		})
	}
}

func TestAuth_QueryTokenForWebSocket(t *testing.T) {
	h := protectedHandler(t, AuthConfig{Enabled: true, BearerToken: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/ws?token=secret", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected query token accepted for websocket, got %d", rec.Code)
	}
}

func TestAuth_EnabledWithEmptyTokenRejects(t *testing.T) {
	h := protectedHandler(t, AuthConfig{Enabled: true, BearerToken: ""})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when configured token is empty, got %d", rec.Code)
	}
}
