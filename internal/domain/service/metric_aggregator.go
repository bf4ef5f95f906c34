package service

import (
	"errors"
	"sort"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// MetricAggregator предоставляет сервисы агрегации метрик (Domain Service)
// Содержит бизнес-логику, которая не принадлежит одной конкретной сущности
type MetricAggregator struct{}

// NewMetricAggregator создает новый MetricAggregator
func NewMetricAggregator() *MetricAggregator {
	return &MetricAggregator{}
}

// CalculateAverage вычисляет среднее значение метрик
func (a *MetricAggregator) CalculateAverage(metrics []*entity.Metric) (float64, error) {
	if len(metrics) == 0 {
		return 0, errors.New("no metrics to aggregate")
	}

	var sum float64
	for _, m := range metrics {
		sum += m.Value()
	}

	return sum / float64(len(metrics)), nil
}

// CalculateMin находит минимальное значение среди метрик
func (a *MetricAggregator) CalculateMin(metrics []*entity.Metric) (float64, error) {
	if len(metrics) == 0 {
		return 0, errors.New("no metrics to aggregate")
	}

	min := metrics[0].Value()
	for _, m := range metrics[1:] {
		if val := m.Value(); val < min {
			min = val
		}
	}

	return min, nil
}

// CalculateMax находит максимальное значение среди метрик
func (a *MetricAggregator) CalculateMax(metrics []*entity.Metric) (float64, error) {
	if len(metrics) == 0 {
		return 0, errors.New("no metrics to aggregate")
	}

	max := metrics[0].Value()
	for _, m := range metrics[1:] {
		if val := m.Value(); val > max {
			max = val
		}
	}

	return max, nil
}

// SortByTime сортирует метрики по времени сбора
func (a *MetricAggregator) SortByTime(metrics []*entity.Metric, descending bool) []*entity.Metric {
	sorted := make([]*entity.Metric, len(metrics))
	copy(sorted, metrics)

	sort.Slice(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].CollectedAt().After(sorted[j].CollectedAt())
		}
		return sorted[i].CollectedAt().Before(sorted[j].CollectedAt())
	})

	return sorted
}

// AverageResponseTime вычисляет среднее время отклика по результатам проверок
func (a *MetricAggregator) AverageResponseTime(results []*entity.HealthCheckResult) (float64, error) {
	if len(results) == 0 {
		return 0, errors.New("no health check results to aggregate")
	}

	var sum float64
	for _, r := range results {
		sum += r.ResponseTimeMs()
	}

	return sum / float64(len(results)), nil
}
