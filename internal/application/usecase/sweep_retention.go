package usecase

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// SweepRetentionUseCase удаляет данные старше периода хранения.
// Пас идемпотентен: повторный запуск с тем же cutoff ничего не удаляет
type SweepRetentionUseCase struct {
	metricRepo    repository.MetricRepository
	alertRepo     repository.AlertRepository
	healthRepo    repository.HealthCheckRepository
	retentionDays int
	logger        *logger.Logger
}

// NewSweepRetentionUseCase создает новый use case
func NewSweepRetentionUseCase(
	metricRepo repository.MetricRepository,
	alertRepo repository.AlertRepository,
	healthRepo repository.HealthCheckRepository,
	retentionDays int,
	logger *logger.Logger,
) *SweepRetentionUseCase {
	return &SweepRetentionUseCase{
		metricRepo:    metricRepo,
		alertRepo:     alertRepo,
		healthRepo:    healthRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Execute выполняет один пас очистки.
// Ошибка одного хранилища не прерывает очистку остальных;
// неудавшийся пас просто будет повторен в следующем цикле
func (uc *SweepRetentionUseCase) Execute(ctx context.Context, now time.Time) error {
	cutoff := now.AddDate(0, 0, -uc.retentionDays)
	uc.logger.Info("Running retention sweep", "cutoff", cutoff.Format(time.RFC3339))

	metrics, err := uc.metricRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		uc.logger.Error("Failed to sweep metrics", err)
	}

	alerts, err := uc.alertRepo.DeleteResolvedOlderThan(ctx, cutoff)
	if err != nil {
		uc.logger.Error("Failed to sweep resolved alerts", err)
	}

	checks, err := uc.healthRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		uc.logger.Error("Failed to sweep health checks", err)
	}

	uc.logger.Info("Retention sweep completed",
		"metrics_deleted", metrics,
		"alerts_deleted", alerts,
		"checks_deleted", checks)

	return nil
}
