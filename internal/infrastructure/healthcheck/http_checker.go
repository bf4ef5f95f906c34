package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPChecker выполняет HTTP-проверки доступности сервисов.
// Здоровым считается ответ со статусом 2xx/3xx
type HTTPChecker struct {
	client *http.Client
}

// NewHTTPChecker создает новый HTTP checker
func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{
		// Таймаут запроса несет ctx; клиент без собственного таймаута
		client: &http.Client{},
	}
}

// Check выполняет GET запрос и возвращает статус и время отклика
func (c *HTTPChecker) Check(ctx context.Context, url string) (bool, float64, string) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, 0, fmt.Sprintf("invalid url: %v", err)
	}

	resp, err := c.client.Do(req)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		return false, elapsed, fmt.Sprintf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false, elapsed, fmt.Sprintf("unexpected status: %d", resp.StatusCode)
	}

	return true, elapsed, ""
}
