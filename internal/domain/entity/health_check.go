package entity

import (
	"errors"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/google/uuid"
)

// HealthCheckResult представляет результат одной активной проверки сервиса
type HealthCheckResult struct {
	id             string
	serviceName    string
	checkType      valueobject.CheckType
	status         valueobject.HealthStatus
	responseTimeMs float64
	errorMessage   string
	checkedAt      time.Time
}

// NewHealthCheckResult создает новый результат проверки (Factory Method)
func NewHealthCheckResult(
	serviceName string,
	checkType valueobject.CheckType,
	status valueobject.HealthStatus,
	responseTimeMs float64,
	errorMessage string,
	checkedAt time.Time,
) (*HealthCheckResult, error) {
	if serviceName == "" {
		return nil, errors.New("service name cannot be empty")
	}
	if err := checkType.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &HealthCheckResult{
		id:             uuid.New().String(),
		serviceName:    serviceName,
		checkType:      checkType,
		status:         status,
		responseTimeMs: responseTimeMs,
		errorMessage:   errorMessage,
		checkedAt:      checkedAt,
	}, nil
}

// ReconstructHealthCheckResult восстанавливает результат из хранилища
func ReconstructHealthCheckResult(
	id string,
	serviceName string,
	checkType valueobject.CheckType,
	status valueobject.HealthStatus,
	responseTimeMs float64,
	errorMessage string,
	checkedAt time.Time,
) *HealthCheckResult {
	return &HealthCheckResult{
		id:             id,
		serviceName:    serviceName,
		checkType:      checkType,
		status:         status,
		responseTimeMs: responseTimeMs,
		errorMessage:   errorMessage,
		checkedAt:      checkedAt,
	}
}

// ID возвращает идентификатор записи
func (h *HealthCheckResult) ID() string {
	return h.id
}

// ServiceName возвращает имя проверенного сервиса
func (h *HealthCheckResult) ServiceName() string {
	return h.serviceName
}

// CheckType возвращает вид проверки
func (h *HealthCheckResult) CheckType() valueobject.CheckType {
	return h.checkType
}

// Status возвращает результат проверки
func (h *HealthCheckResult) Status() valueobject.HealthStatus {
	return h.status
}

// ResponseTimeMs возвращает время отклика в миллисекундах
func (h *HealthCheckResult) ResponseTimeMs() float64 {
	return h.responseTimeMs
}

// ErrorMessage возвращает текст ошибки (пустой при успехе)
func (h *HealthCheckResult) ErrorMessage() string {
	return h.errorMessage
}

// CheckedAt возвращает время выполнения проверки
func (h *HealthCheckResult) CheckedAt() time.Time {
	return h.checkedAt
}

// IsHealthy проверяет успешность проверки
func (h *HealthCheckResult) IsHealthy() bool {
	return h.status == valueobject.StatusHealthy
}

// HealthValue возвращает 1/0 для производной метрики <service>.health
func (h *HealthCheckResult) HealthValue() float64 {
	if h.IsHealthy() {
		return 1
	}
	return 0
}
