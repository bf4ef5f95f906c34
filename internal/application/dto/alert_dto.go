package dto

import (
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// AlertDTO представляет алерт для передачи между слоями
type AlertDTO struct {
	ID             string     `json:"id"`
	AlertID        string     `json:"alert_id"`
	RuleName       string     `json:"rule_name"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	Message        string     `json:"message"`
	Metric         string     `json:"metric"`
	CurrentValue   float64    `json:"current_value"`
	ThresholdValue float64    `json:"threshold_value"`
	Source         string     `json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	Acknowledged   bool       `json:"acknowledged"`
}

// FromAlert конвертирует Domain Entity в DTO
func FromAlert(alert *entity.Alert) *AlertDTO {
	dto := &AlertDTO{
		ID:             alert.ID(),
		AlertID:        alert.AlertID(),
		RuleName:       alert.RuleName(),
		Severity:       alert.Severity().String(),
		Status:         alert.Status().String(),
		Message:        alert.Message(),
		Metric:         alert.Metric(),
		CurrentValue:   alert.CurrentValue(),
		ThresholdValue: alert.ThresholdValue(),
		Source:         alert.Source(),
		CreatedAt:      alert.CreatedAt(),
		Acknowledged:   alert.Acknowledged(),
	}
	if !alert.ResolvedAt().IsZero() {
		resolvedAt := alert.ResolvedAt()
		dto.ResolvedAt = &resolvedAt
	}
	return dto
}

// ToAlertDTOs конвертирует слайс Entity в слайс DTO
func ToAlertDTOs(alerts []*entity.Alert) []*AlertDTO {
	dtos := make([]*AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = FromAlert(a)
	}
	return dtos
}

// AlertEventDTO — событие жизненного цикла алерта для push-рассылки и брокера
type AlertEventDTO struct {
	Kind      string    `json:"kind"` // CREATED | RESOLVED
	Alert     *AlertDTO `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
	Hostname  string    `json:"hostname"`
}
