package valueobject

import "errors"

// Severity представляет уровень важности алерта (Value Object)
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Validate проверяет валидность уровня важности
func (s Severity) Validate() error {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return nil
	default:
		return errors.New("invalid severity")
	}
}

// String возвращает строковое представление уровня важности
func (s Severity) String() string {
	return string(s)
}

// Rank возвращает числовой ранг для сортировки (CRITICAL > WARNING > INFO)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}
