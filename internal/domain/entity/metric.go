package entity

import (
	"errors"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/google/uuid"
)

// Metric представляет одно числовое наблюдение с меткой времени (Aggregate Root)
// Иммутабельна после создания; удаляется только retention-менеджером
type Metric struct {
	id          string
	category    valueobject.MetricCategory
	name        string
	value       float64
	unit        string
	source      string
	collectedAt time.Time
	createdAt   time.Time
}

// NewMetric создает новую метрику (Factory Method)
func NewMetric(
	category valueobject.MetricCategory,
	name string,
	value float64,
	unit string,
	source string,
	collectedAt time.Time,
) (*Metric, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("metric name cannot be empty")
	}
	if collectedAt.IsZero() {
		return nil, errors.New("collected_at cannot be zero")
	}

	return &Metric{
		id:          uuid.New().String(),
		category:    category,
		name:        name,
		value:       value,
		unit:        unit,
		source:      source,
		collectedAt: collectedAt,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructMetric восстанавливает метрику из хранилища (для Repository)
func ReconstructMetric(
	id string,
	category valueobject.MetricCategory,
	name string,
	value float64,
	unit string,
	source string,
	collectedAt, createdAt time.Time,
) *Metric {
	return &Metric{
		id:          id,
		category:    category,
		name:        name,
		value:       value,
		unit:        unit,
		source:      source,
		collectedAt: collectedAt,
		createdAt:   createdAt,
	}
}

// ID возвращает идентификатор записи
func (m *Metric) ID() string {
	return m.id
}

// Category возвращает категорию метрики
func (m *Metric) Category() valueobject.MetricCategory {
	return m.category
}

// Name возвращает имя метрики (точечная нотация, например "cpu.usage")
func (m *Metric) Name() string {
	return m.name
}

// Value возвращает числовое значение
func (m *Metric) Value() float64 {
	return m.value
}

// Unit возвращает единицу измерения (может быть пустой)
func (m *Metric) Unit() string {
	return m.unit
}

// Source возвращает идентификатор хоста/сервиса-источника
func (m *Metric) Source() string {
	return m.source
}

// CollectedAt возвращает время сбора метрики
func (m *Metric) CollectedAt() time.Time {
	return m.collectedAt
}

// CreatedAt возвращает время создания записи
func (m *Metric) CreatedAt() time.Time {
	return m.createdAt
}

// IsOlderThan проверяет, старше ли метрика указанного момента
func (m *Metric) IsOlderThan(cutoff time.Time) bool {
	return m.collectedAt.Before(cutoff)
}
