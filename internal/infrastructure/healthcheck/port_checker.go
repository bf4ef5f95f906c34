package healthcheck

import (
	"context"
	"fmt"
	"net"
	"time"
)

// PortChecker проверяет доступность TCP-порта
type PortChecker struct {
	dialer *net.Dialer
}

// NewPortChecker создает новый Port checker
func NewPortChecker() *PortChecker {
	return &PortChecker{
		dialer: &net.Dialer{},
	}
}

// Check пытается установить TCP-соединение; успех — сервис доступен
func (c *PortChecker) Check(ctx context.Context, host string, port int) (bool, float64, string) {
	address := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	start := time.Now()

	conn, err := c.dialer.DialContext(ctx, "tcp", address)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		return false, elapsed, fmt.Sprintf("connection failed: %v", err)
	}
	_ = conn.Close()

	return true, elapsed, ""
}
