package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// RunHealthChecksUseCase выполняет активные проверки сервисов
// и публикует производные метрики в общий поток
type RunHealthChecksUseCase struct {
	prober     port.HealthProber
	healthRepo repository.HealthCheckRepository
	metricRepo repository.MetricRepository
	snapshot   port.SnapshotStore
	services   []port.ServiceSpec
	hostname   string
	logger     *logger.Logger
}

// NewRunHealthChecksUseCase создает новый use case
func NewRunHealthChecksUseCase(
	prober port.HealthProber,
	healthRepo repository.HealthCheckRepository,
	metricRepo repository.MetricRepository,
	snapshot port.SnapshotStore,
	services []port.ServiceSpec,
	hostname string,
	logger *logger.Logger,
) *RunHealthChecksUseCase {
	return &RunHealthChecksUseCase{
		prober:     prober,
		healthRepo: healthRepo,
		metricRepo: metricRepo,
		snapshot:   snapshot,
		services:   services,
		hostname:   hostname,
		logger:     logger,
	}
}

// Execute проверяет все сконфигурированные сервисы параллельно.
// Каждая проверка ограничена собственным таймаутом; медленный сервис
// не задерживает остальные проверки тика
func (uc *RunHealthChecksUseCase) Execute(ctx context.Context, now time.Time) error {
	if len(uc.services) == 0 {
		return nil
	}

	uc.logger.Debug("Running health checks", "services", len(uc.services))

	results := make([]*entity.HealthCheckResult, len(uc.services))
	var wg sync.WaitGroup
	for i, spec := range uc.services {
		wg.Add(1)
		go func(i int, spec port.ServiceSpec) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
			defer cancel()
			results[i] = uc.prober.Check(checkCtx, spec)
		}(i, spec)
	}
	wg.Wait()

	healthy := 0
	for _, result := range results {
		if result.IsHealthy() {
			healthy++
		} else {
			uc.logger.Warn("Service check failed",
				"service", result.ServiceName(),
				"error", result.ErrorMessage())
		}
	}
	uc.logger.Debug("Health checks completed", "healthy", healthy, "total", len(results))

	// Сохраняем результаты проверок; отказ хранилища не фатален
	if err := uc.healthRepo.SaveBatch(ctx, results); err != nil {
		uc.logger.Error("Failed to save health check results", err)
	}

	// Производные метрики: <service>.health (1/0) и <service>.response_time (ms)
	// попадают в общий поток метрик и доступны пороговым правилам
	derived := uc.deriveMetrics(results, now)
	uc.snapshot.Record(derived)
	if err := uc.metricRepo.SaveBatch(ctx, derived); err != nil {
		uc.logger.Error("Failed to save derived health metrics", err)
	}

	return nil
}

func (uc *RunHealthChecksUseCase) deriveMetrics(results []*entity.HealthCheckResult, now time.Time) []*entity.Metric {
	metrics := make([]*entity.Metric, 0, len(results)*2)
	for _, result := range results {
		healthMetric, err := entity.NewMetric(
			valueobject.Health,
			fmt.Sprintf("%s.health", result.ServiceName()),
			result.HealthValue(),
			"",
			uc.hostname,
			now,
		)
		if err == nil {
			metrics = append(metrics, healthMetric)
		}

		responseMetric, err := entity.NewMetric(
			valueobject.Health,
			fmt.Sprintf("%s.response_time", result.ServiceName()),
			result.ResponseTimeMs(),
			"ms",
			uc.hostname,
			now,
		)
		if err == nil {
			metrics = append(metrics, responseMetric)
		}
	}
	return metrics
}
