package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// CollectMetricsUseCase координирует сбор, сохранение и рассылку метрик
type CollectMetricsUseCase struct {
	collector  port.MetricsCollector
	repository repository.MetricRepository
	snapshot   port.SnapshotStore
	stream     port.NotificationStream
	exporter   port.MetricsExporter // может быть nil если CloudWatch отключен
	hostname   string
	logger     *logger.Logger
}

// NewCollectMetricsUseCase создает новый use case
func NewCollectMetricsUseCase(
	collector port.MetricsCollector,
	repository repository.MetricRepository,
	snapshot port.SnapshotStore,
	stream port.NotificationStream,
	exporter port.MetricsExporter,
	hostname string,
	logger *logger.Logger,
) *CollectMetricsUseCase {
	return &CollectMetricsUseCase{
		collector:  collector,
		repository: repository,
		snapshot:   snapshot,
		stream:     stream,
		exporter:   exporter,
		hostname:   hostname,
		logger:     logger,
	}
}

// Execute выполняет сбор метрик одного тика
func (uc *CollectMetricsUseCase) Execute(ctx context.Context, now time.Time) error {
	// 1. Собираем сырые метрики от collector
	uc.logger.Debug("Collecting metrics from system")
	rawMetrics, err := uc.collector.CollectAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to collect metrics", err)
		return fmt.Errorf("failed to collect metrics: %w", err)
	}

	// 2. Конвертируем в Domain Entities
	metrics := make([]*entity.Metric, 0, len(rawMetrics))
	for _, raw := range rawMetrics {
		metric, err := entity.NewMetric(raw.Category, raw.Name, raw.Value, raw.Unit, uc.hostname, now)
		if err != nil {
			uc.logger.Warn("Skipping invalid metric", "name", raw.Name, "error", err.Error())
			continue
		}
		metrics = append(metrics, metric)
	}

	if len(metrics) == 0 {
		uc.logger.Warn("No valid metrics collected this tick")
		return nil
	}

	uc.logger.Debug("Converted to domain entities", "count", len(metrics))

	// 3. Обновляем snapshot до записи в БД: оценка правил
	// должна работать даже при недоступном хранилище
	uc.snapshot.Record(metrics)

	// 4. Сохраняем в репозитории (batch insert).
	// Отказ хранилища — потеря метрик тика, но не остановка процесса
	if err := uc.repository.SaveBatch(ctx, metrics); err != nil {
		uc.logger.Error("Failed to save metrics batch, tick data lost", err)
	}

	// 5. Рассылаем снимок подключенным клиентам
	if uc.stream != nil {
		snapshot := dto.NewMetricSnapshotDTO(uc.snapshot.LatestAll(), now)
		uc.stream.BroadcastSnapshot(snapshot)
		uc.logger.Debug("Snapshot broadcasted", "client_count", uc.stream.ClientCount())
	}

	// 6. Экспортируем во внешнюю observability-платформу (best effort)
	if uc.exporter != nil {
		if err := uc.exporter.PublishBatch(ctx, metrics); err != nil {
			uc.logger.Warn("Failed to export metrics", "error", err.Error())
		}
	}

	return nil
}
