package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// GetRecentMetricsUseCase возвращает оконную выборку метрики с агрегатами
type GetRecentMetricsUseCase struct {
	metricRepo repository.MetricRepository
	aggregator *service.MetricAggregator
	cache      port.Cache // может быть nil если Redis отключен
	logger     *logger.Logger
}

// NewGetRecentMetricsUseCase создает новый use case
func NewGetRecentMetricsUseCase(
	metricRepo repository.MetricRepository,
	aggregator *service.MetricAggregator,
	cache port.Cache,
	logger *logger.Logger,
) *GetRecentMetricsUseCase {
	return &GetRecentMetricsUseCase{
		metricRepo: metricRepo,
		aggregator: aggregator,
		cache:      cache,
		logger:     logger,
	}
}

// Execute возвращает сэмплы метрики за окно, заканчивающееся в now.
// Результат кешируется: окно меняется раз в тик, не чаще
func (uc *GetRecentMetricsUseCase) Execute(ctx context.Context, name string, window time.Duration, now time.Time) (*dto.MetricWindowDTO, error) {
	if name == "" {
		return nil, fmt.Errorf("metric name is required")
	}

	cacheKey := fmt.Sprintf("metrics:recent:%s:%s", name, window.String())
	if uc.cache != nil {
		var cached dto.MetricWindowDTO
		if err := uc.cache.Get(ctx, cacheKey, &cached); err == nil {
			uc.logger.Debug("Metrics window served from cache", "name", name)
			return &cached, nil
		}
	}

	timeRange, err := valueobject.NewTimeRangeEndingAt(now, window)
	if err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	metrics, err := uc.metricRepo.FindByNameInRange(ctx, name, timeRange)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}

	result := &dto.MetricWindowDTO{
		Name:    name,
		Window:  window.String(),
		Metrics: dto.ToMetricDTOs(metrics),
	}

	// Пустое окно — валидный результат с нулевыми агрегатами
	if len(metrics) > 0 {
		result.Average, _ = uc.aggregator.CalculateAverage(metrics)
		result.Min, _ = uc.aggregator.CalculateMin(metrics)
		result.Max, _ = uc.aggregator.CalculateMax(metrics)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, result); err != nil {
			uc.logger.Debug("Failed to cache metrics window", "error", err.Error())
		}
	}

	return result, nil
}
