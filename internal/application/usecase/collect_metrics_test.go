package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

type mockCollector struct {
	metrics []port.RawMetric
	err     error
}

func (m *mockCollector) CollectAll(_ context.Context) ([]port.RawMetric, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.metrics, nil
}

type failingMetricRepository struct {
	mockMetricRepository
	saveErr error
}

func (m *failingMetricRepository) SaveBatch(ctx context.Context, metrics []*entity.Metric) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	return m.mockMetricRepository.SaveBatch(ctx, metrics)
}

type mockStream struct {
	snapshots []*dto.MetricSnapshotDTO
	alerts    []*dto.AlertEventDTO
}

func (m *mockStream) BroadcastSnapshot(snapshot *dto.MetricSnapshotDTO) {
	m.snapshots = append(m.snapshots, snapshot)
}

func (m *mockStream) BroadcastAlert(event *dto.AlertEventDTO) {
	m.alerts = append(m.alerts, event)
}

func (m *mockStream) ClientCount() int {
	return 0
}

func TestCollectMetrics_HappyPath(t *testing.T) {
	collector := &mockCollector{metrics: []port.RawMetric{
		{Category: valueobject.System, Name: "cpu.usage", Value: 42.5, Unit: "%"},
		{Category: valueobject.System, Name: "memory.usage", Value: 61.2, Unit: "%"},
	}}
	repo := &mockMetricRepository{}
	snapshot := newMockSnapshotStore()
	stream := &mockStream{}

	uc := NewCollectMetricsUseCase(collector, repo, snapshot, stream, nil, "test-host", logger.New("error"))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := uc.Execute(context.Background(), now); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(repo.saved) != 1 || len(repo.saved[0]) != 2 {
		t.Fatalf("expected one batch of 2 metrics persisted")
	}

	metric, ok := snapshot.Latest("cpu.usage")
	if !ok {
		t.Fatalf("expected cpu.usage in snapshot")
	}
	if metric.Value() != 42.5 {
		t.Fatalf("unexpected snapshot value: %f", metric.Value())
	}
	if metric.Source() != "test-host" {
		t.Fatalf("unexpected metric source: %s", metric.Source())
	}

	if len(stream.snapshots) != 1 {
		t.Fatalf("expected one broadcast snapshot, got %d", len(stream.snapshots))
	}
	if len(stream.snapshots[0].Metrics) != 2 {
		t.Fatalf("expected snapshot with 2 metrics, got %d", len(stream.snapshots[0].Metrics))
	}
}

func TestCollectMetrics_CollectorFailureReturnsError(t *testing.T) {
	collector := &mockCollector{err: errors.New("gopsutil broke")}
	uc := NewCollectMetricsUseCase(collector, &mockMetricRepository{}, newMockSnapshotStore(), nil, nil, "test-host", logger.New("error"))

	if err := uc.Execute(context.Background(), time.Now().UTC()); err == nil {
		t.Fatalf("expected error when collector fails")
	}
}

func TestCollectMetrics_SnapshotUpdatedDespitePersistFailure(t *testing.T) {
	collector := &mockCollector{metrics: []port.RawMetric{
		{Category: valueobject.System, Name: "cpu.usage", Value: 95, Unit: "%"},
	}}
	repo := &failingMetricRepository{saveErr: errors.New("db down")}
	snapshot := newMockSnapshotStore()

	uc := NewCollectMetricsUseCase(collector, repo, snapshot, nil, nil, "test-host", logger.New("error"))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := uc.Execute(context.Background(), now); err != nil {
		t.Fatalf("expected persist failure to be non-fatal, got %v", err)
	}

	// Оценка правил должна видеть метрику, даже если БД недоступна
	if _, ok := snapshot.Latest("cpu.usage"); !ok {
		t.Fatalf("expected snapshot updated before persistence")
	}
}

func TestCollectMetrics_InvalidMetricSkipped(t *testing.T) {
	collector := &mockCollector{metrics: []port.RawMetric{
		{Category: valueobject.System, Name: "", Value: 1, Unit: "%"},
		{Category: valueobject.System, Name: "cpu.usage", Value: 42, Unit: "%"},
	}}
	repo := &mockMetricRepository{}
	snapshot := newMockSnapshotStore()

	uc := NewCollectMetricsUseCase(collector, repo, snapshot, nil, nil, "test-host", logger.New("error"))

	if err := uc.Execute(context.Background(), time.Now().UTC()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(repo.saved) != 1 || len(repo.saved[0]) != 1 {
		t.Fatalf("expected invalid metric dropped, valid one persisted")
	}
}
