package valueobject

import "errors"

// MetricCategory представляет категорию метрики (Value Object)
type MetricCategory string

const (
	System      MetricCategory = "system"
	Application MetricCategory = "application"
	Health      MetricCategory = "health"
)

// Validate проверяет валидность категории метрики
func (mc MetricCategory) Validate() error {
	switch mc {
	case System, Application, Health:
		return nil
	default:
		return errors.New("invalid metric category")
	}
}

// String возвращает строковое представление категории
func (mc MetricCategory) String() string {
	return string(mc)
}

// AllMetricCategories возвращает список всех допустимых категорий
func AllMetricCategories() []MetricCategory {
	return []MetricCategory{System, Application, Health}
}
