package usecase

import (
	"context"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
)

// GetActiveAlertsUseCase возвращает текущие ACTIVE алерты
type GetActiveAlertsUseCase struct {
	registry *service.AlertRegistry
}

// NewGetActiveAlertsUseCase создает новый use case
func NewGetActiveAlertsUseCase(registry *service.AlertRegistry) *GetActiveAlertsUseCase {
	return &GetActiveAlertsUseCase{registry: registry}
}

// Execute возвращает ACTIVE алерты, отсортированные по важности
func (uc *GetActiveAlertsUseCase) Execute(ctx context.Context) []*dto.AlertDTO {
	return dto.ToAlertDTOs(uc.registry.ActiveAlerts())
}
