package dto

import (
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// MetricDTO представляет метрику для передачи между слоями
type MetricDTO struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Value       float64   `json:"value"`
	Unit        string    `json:"unit,omitempty"`
	Source      string    `json:"source"`
	CollectedAt time.Time `json:"collected_at"`
}

// FromMetric конвертирует Domain Entity в DTO
func FromMetric(metric *entity.Metric) *MetricDTO {
	return &MetricDTO{
		ID:          metric.ID(),
		Category:    metric.Category().String(),
		Name:        metric.Name(),
		Value:       metric.Value(),
		Unit:        metric.Unit(),
		Source:      metric.Source(),
		CollectedAt: metric.CollectedAt(),
	}
}

// ToMetricDTOs конвертирует слайс Entity в слайс DTO
func ToMetricDTOs(metrics []*entity.Metric) []*MetricDTO {
	dtos := make([]*MetricDTO, len(metrics))
	for i, m := range metrics {
		dtos[i] = FromMetric(m)
	}
	return dtos
}

// MetricWindowDTO — оконная выборка с агрегатами для дашборда
type MetricWindowDTO struct {
	Name    string       `json:"name"`
	Window  string       `json:"window"`
	Metrics []*MetricDTO `json:"metrics"`
	Average float64      `json:"average"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
}

// MetricSnapshotDTO — снимок последних значений метрик для push-рассылки
type MetricSnapshotDTO struct {
	Timestamp time.Time             `json:"timestamp"`
	Metrics   map[string]*MetricDTO `json:"metrics"`
}

// NewMetricSnapshotDTO строит снимок из последних метрик каждого имени
func NewMetricSnapshotDTO(metrics []*entity.Metric, now time.Time) *MetricSnapshotDTO {
	byName := make(map[string]*MetricDTO, len(metrics))
	for _, m := range metrics {
		existing, ok := byName[m.Name()]
		if ok && existing.CollectedAt.After(m.CollectedAt()) {
			continue
		}
		byName[m.Name()] = FromMetric(m)
	}
	return &MetricSnapshotDTO{
		Timestamp: now,
		Metrics:   byName,
	}
}
