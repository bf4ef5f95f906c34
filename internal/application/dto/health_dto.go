package dto

import (
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// HealthCheckDTO представляет результат проверки для передачи между слоями
type HealthCheckDTO struct {
	ServiceName    string    `json:"service_name"`
	CheckType      string    `json:"check_type"`
	Status         string    `json:"status"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// FromHealthCheck конвертирует Domain Entity в DTO
func FromHealthCheck(result *entity.HealthCheckResult) *HealthCheckDTO {
	return &HealthCheckDTO{
		ServiceName:    result.ServiceName(),
		CheckType:      result.CheckType().String(),
		Status:         result.Status().String(),
		ResponseTimeMs: result.ResponseTimeMs(),
		ErrorMessage:   result.ErrorMessage(),
		CheckedAt:      result.CheckedAt(),
	}
}

// ServiceHealthDTO — сводка по сервису для дашборда:
// последний статус + среднее время отклика за окно
type ServiceHealthDTO struct {
	ServiceName       string    `json:"service_name"`
	CheckType         string    `json:"check_type"`
	Status            string    `json:"status"`
	AvgResponseTimeMs float64   `json:"avg_response_time_ms"`
	LastError         string    `json:"last_error,omitempty"`
	LastCheckedAt     time.Time `json:"last_checked_at"`
}
