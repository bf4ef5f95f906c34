package valueobject

import "errors"

// AlertStatus представляет состояние жизненного цикла алерта (Value Object)
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "ACTIVE"
	AlertStatusResolved AlertStatus = "RESOLVED"
)

// Validate проверяет валидность статуса
func (s AlertStatus) Validate() error {
	switch s {
	case AlertStatusActive, AlertStatusResolved:
		return nil
	default:
		return errors.New("invalid alert status")
	}
}

// String возвращает строковое представление статуса
func (s AlertStatus) String() string {
	return string(s)
}
