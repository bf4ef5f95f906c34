package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// AcknowledgeAlertUseCase помечает ACTIVE алерт подтвержденным оператором
type AcknowledgeAlertUseCase struct {
	registry  *service.AlertRegistry
	alertRepo repository.AlertRepository
	logger    *logger.Logger
}

// NewAcknowledgeAlertUseCase создает новый use case
func NewAcknowledgeAlertUseCase(
	registry *service.AlertRegistry,
	alertRepo repository.AlertRepository,
	logger *logger.Logger,
) *AcknowledgeAlertUseCase {
	return &AcknowledgeAlertUseCase{
		registry:  registry,
		alertRepo: alertRepo,
		logger:    logger,
	}
}

// Execute подтверждает алерт по alertID.
// Подтверждение не влияет на жизненный цикл — алерт остается ACTIVE
func (uc *AcknowledgeAlertUseCase) Execute(ctx context.Context, alertID string) (*dto.AlertDTO, error) {
	alert, err := uc.registry.Acknowledge(alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	if err := uc.alertRepo.Update(ctx, alert); err != nil {
		uc.logger.Error("Failed to persist acknowledgement", err, "alert_id", alertID)
	}

	uc.logger.Info("Alert acknowledged", "alert_id", alertID)
	return dto.FromAlert(alert), nil
}
