package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Окно усреднения времени отклика для сводки по сервисам
const responseTimeWindow = 15 * time.Minute

// GetServiceHealthUseCase возвращает сводку состояния сервисов:
// последний статус каждой проверки + среднее время отклика за окно
type GetServiceHealthUseCase struct {
	healthRepo repository.HealthCheckRepository
	aggregator *service.MetricAggregator
	logger     *logger.Logger
}

// NewGetServiceHealthUseCase создает новый use case
func NewGetServiceHealthUseCase(
	healthRepo repository.HealthCheckRepository,
	aggregator *service.MetricAggregator,
	logger *logger.Logger,
) *GetServiceHealthUseCase {
	return &GetServiceHealthUseCase{
		healthRepo: healthRepo,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute возвращает сводку, отсортированную по имени сервиса
func (uc *GetServiceHealthUseCase) Execute(ctx context.Context, now time.Time) ([]*dto.ServiceHealthDTO, error) {
	latest, err := uc.healthRepo.FindLatestPerService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query service health: %w", err)
	}

	timeRange, err := valueobject.NewTimeRangeEndingAt(now, responseTimeWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	summaries := make([]*dto.ServiceHealthDTO, 0, len(latest))
	for serviceName, result := range latest {
		summary := &dto.ServiceHealthDTO{
			ServiceName:   serviceName,
			CheckType:     result.CheckType().String(),
			Status:        result.Status().String(),
			LastError:     result.ErrorMessage(),
			LastCheckedAt: result.CheckedAt(),
		}

		history, err := uc.healthRepo.FindByServiceInRange(ctx, serviceName, timeRange)
		if err != nil {
			uc.logger.Warn("Failed to load check history", "service", serviceName, "error", err.Error())
		} else if avg, err := uc.aggregator.AverageResponseTime(history); err == nil {
			summary.AvgResponseTimeMs = avg
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ServiceName < summaries[j].ServiceName
	})

	return summaries, nil
}
