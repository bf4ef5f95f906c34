package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

type fakeProber struct {
	statuses map[string]valueobject.HealthStatus
	times    map[string]float64
}

func (p *fakeProber) Check(_ context.Context, spec port.ServiceSpec) *entity.HealthCheckResult {
	status, ok := p.statuses[spec.Name]
	if !ok {
		status = valueobject.StatusUnknown
	}
	result, err := entity.NewHealthCheckResult(
		spec.Name, spec.Type, status, p.times[spec.Name], "", time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return result
}

type capturingHealthRepo struct {
	mockHealthCheckRepository
	batches [][]*entity.HealthCheckResult
}

func (m *capturingHealthRepo) SaveBatch(_ context.Context, results []*entity.HealthCheckResult) error {
	m.batches = append(m.batches, results)
	return nil
}

func TestRunHealthChecks_DerivedMetrics(t *testing.T) {
	prober := &fakeProber{
		statuses: map[string]valueobject.HealthStatus{
			"api":      valueobject.StatusHealthy,
			"database": valueobject.StatusUnhealthy,
		},
		times: map[string]float64{"api": 120, "database": 0},
	}
	healthRepo := &capturingHealthRepo{}
	metricRepo := &mockMetricRepository{}
	snapshot := newMockSnapshotStore()

	uc := NewRunHealthChecksUseCase(prober, healthRepo, metricRepo, snapshot,
		[]port.ServiceSpec{
			{Name: "api", Type: valueobject.CheckHTTP, URL: "http://localhost/healthz", Timeout: time.Second},
			{Name: "database", Type: valueobject.CheckPort, Host: "localhost", Port: 5432, Timeout: time.Second},
		},
		"test-host", logger.New("error"))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := uc.Execute(context.Background(), now); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(healthRepo.batches) != 1 || len(healthRepo.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 check results")
	}

	// Производные метрики доступны правилам через snapshot
	apiHealth, ok := snapshot.Latest("api.health")
	if !ok {
		t.Fatalf("expected api.health in snapshot")
	}
	if apiHealth.Value() != 1 {
		t.Fatalf("expected api.health=1, got %f", apiHealth.Value())
	}

	dbHealth, ok := snapshot.Latest("database.health")
	if !ok {
		t.Fatalf("expected database.health in snapshot")
	}
	if dbHealth.Value() != 0 {
		t.Fatalf("expected database.health=0, got %f", dbHealth.Value())
	}

	apiResponse, ok := snapshot.Latest("api.response_time")
	if !ok {
		t.Fatalf("expected api.response_time in snapshot")
	}
	if apiResponse.Value() != 120 {
		t.Fatalf("expected api.response_time=120, got %f", apiResponse.Value())
	}
	if apiResponse.Unit() != "ms" {
		t.Fatalf("expected ms unit, got %q", apiResponse.Unit())
	}

	// И сохраняются в хранилище метрик
	if len(metricRepo.saved) != 1 || len(metricRepo.saved[0]) != 4 {
		t.Fatalf("expected 4 derived metrics persisted")
	}
}

func TestRunHealthChecks_NoServicesIsNoop(t *testing.T) {
	healthRepo := &capturingHealthRepo{}
	uc := NewRunHealthChecksUseCase(&fakeProber{}, healthRepo, &mockMetricRepository{},
		newMockSnapshotStore(), nil, "test-host", logger.New("error"))

	if err := uc.Execute(context.Background(), time.Now().UTC()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(healthRepo.batches) != 0 {
		t.Fatalf("expected no persistence without services")
	}
}
