package service

import (
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

func aggregatorMetrics(t *testing.T, values ...float64) []*entity.Metric {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	metrics := make([]*entity.Metric, 0, len(values))
	for i, v := range values {
		m, err := entity.NewMetric(valueobject.System, "cpu.usage", v, "%", "test-host", now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("NewMetric() error = %v", err)
		}
		metrics = append(metrics, m)
	}
	return metrics
}

func TestMetricAggregator_Aggregates(t *testing.T) {
	a := NewMetricAggregator()
	metrics := aggregatorMetrics(t, 10, 30, 50)

	avg, err := a.CalculateAverage(metrics)
	if err != nil || avg != 30 {
		t.Fatalf("CalculateAverage() = %f, %v", avg, err)
	}

	min, err := a.CalculateMin(metrics)
	if err != nil || min != 10 {
		t.Fatalf("CalculateMin() = %f, %v", min, err)
	}

	max, err := a.CalculateMax(metrics)
	if err != nil || max != 50 {
		t.Fatalf("CalculateMax() = %f, %v", max, err)
	}
}

func TestMetricAggregator_EmptyInput(t *testing.T) {
	a := NewMetricAggregator()

	if _, err := a.CalculateAverage(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := a.CalculateMin(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := a.CalculateMax(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := a.AverageResponseTime(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestMetricAggregator_SortByTime(t *testing.T) {
	a := NewMetricAggregator()
	metrics := aggregatorMetrics(t, 1, 2, 3)

	desc := a.SortByTime(metrics, true)
	if !desc[0].CollectedAt().After(desc[2].CollectedAt()) {
		t.Fatalf("expected descending order")
	}

	asc := a.SortByTime(desc, false)
	if !asc[0].CollectedAt().Before(asc[2].CollectedAt()) {
		t.Fatalf("expected ascending order")
	}

	// Исходный слайс не мутируется
	if metrics[0].Value() != 1 {
		t.Fatalf("expected input slice untouched")
	}
}

func TestMetricAggregator_AverageResponseTime(t *testing.T) {
	a := NewMetricAggregator()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	results := make([]*entity.HealthCheckResult, 0, 2)
	for _, ms := range []float64{100, 300} {
		r, err := entity.NewHealthCheckResult("api", valueobject.CheckHTTP, valueobject.StatusHealthy, ms, "", now)
		if err != nil {
			t.Fatalf("NewHealthCheckResult() error = %v", err)
		}
		results = append(results, r)
	}

	avg, err := a.AverageResponseTime(results)
	if err != nil || avg != 200 {
		t.Fatalf("AverageResponseTime() = %f, %v", avg, err)
	}
}
