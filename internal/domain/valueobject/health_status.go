package valueobject

import "errors"

// HealthStatus представляет результат health-проверки сервиса (Value Object)
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "HEALTHY"
	StatusUnhealthy HealthStatus = "UNHEALTHY"
	StatusUnknown   HealthStatus = "UNKNOWN"
)

// Validate проверяет валидность статуса
func (s HealthStatus) Validate() error {
	switch s {
	case StatusHealthy, StatusUnhealthy, StatusUnknown:
		return nil
	default:
		return errors.New("invalid health status")
	}
}

// String возвращает строковое представление статуса
func (s HealthStatus) String() string {
	return string(s)
}

// CheckType представляет вид активной проверки (Value Object)
type CheckType string

const (
	CheckHTTP    CheckType = "http"
	CheckPort    CheckType = "port"
	CheckProcess CheckType = "process"
)

// Validate проверяет валидность вида проверки
func (ct CheckType) Validate() error {
	switch ct {
	case CheckHTTP, CheckPort, CheckProcess:
		return nil
	default:
		return errors.New("invalid check type")
	}
}

// String возвращает строковое представление вида проверки
func (ct CheckType) String() string {
	return string(ct)
}
