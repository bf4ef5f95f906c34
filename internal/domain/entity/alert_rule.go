package entity

import (
	"errors"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// AlertRule представляет статическое пороговое правило.
// Загружается один раз при старте; иммутабельно в течение работы движка
type AlertRule struct {
	name        string
	metric      string
	condition   valueobject.Condition
	threshold   float64
	severity    valueobject.Severity
	minDuration time.Duration // условие должно держаться не меньше этого времени
}

// NewAlertRule создает новое правило с валидацией (Factory Method)
func NewAlertRule(
	name string,
	metric string,
	condition valueobject.Condition,
	threshold float64,
	severity valueobject.Severity,
	minDuration time.Duration,
) (AlertRule, error) {
	if name == "" {
		return AlertRule{}, errors.New("rule name cannot be empty")
	}
	if metric == "" {
		return AlertRule{}, errors.New("rule metric cannot be empty")
	}
	if err := condition.Validate(); err != nil {
		return AlertRule{}, err
	}
	if err := severity.Validate(); err != nil {
		return AlertRule{}, err
	}
	if minDuration < 0 {
		return AlertRule{}, errors.New("min duration cannot be negative")
	}

	return AlertRule{
		name:        name,
		metric:      metric,
		condition:   condition,
		threshold:   threshold,
		severity:    severity,
		minDuration: minDuration,
	}, nil
}

// Name возвращает уникальное имя правила
func (r AlertRule) Name() string {
	return r.name
}

// Metric возвращает имя наблюдаемой метрики
func (r AlertRule) Metric() string {
	return r.metric
}

// Condition возвращает оператор сравнения
func (r AlertRule) Condition() valueobject.Condition {
	return r.condition
}

// Threshold возвращает пороговое значение
func (r AlertRule) Threshold() float64 {
	return r.threshold
}

// Severity возвращает уровень важности
func (r AlertRule) Severity() valueobject.Severity {
	return r.severity
}

// MinDuration возвращает минимальную длительность нарушения до срабатывания
func (r AlertRule) MinDuration() time.Duration {
	return r.minDuration
}

// AlertID возвращает стабильный ключ дедупликации для этого правила
func (r AlertRule) AlertID() string {
	return r.name + "_" + r.metric
}
