package postgres

import (
	"database/sql"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// MetricDBModel представляет метрику в БД
type MetricDBModel struct {
	ID          string
	Category    string
	Name        string
	Value       float64
	Unit        string
	Source      string
	CollectedAt time.Time
	CreatedAt   time.Time
}

// MetricToDBModel конвертирует Domain Entity в DB Model
func MetricToDBModel(metric *entity.Metric) *MetricDBModel {
	return &MetricDBModel{
		ID:          metric.ID(),
		Category:    metric.Category().String(),
		Name:        metric.Name(),
		Value:       metric.Value(),
		Unit:        metric.Unit(),
		Source:      metric.Source(),
		CollectedAt: metric.CollectedAt(),
		CreatedAt:   metric.CreatedAt(),
	}
}

// MetricToEntity конвертирует DB Model в Domain Entity
func MetricToEntity(model *MetricDBModel) *entity.Metric {
	return entity.ReconstructMetric(
		model.ID,
		valueobject.MetricCategory(model.Category),
		model.Name,
		model.Value,
		model.Unit,
		model.Source,
		model.CollectedAt,
		model.CreatedAt,
	)
}

// ScanMetricRow сканирует строку БД в MetricDBModel
func ScanMetricRow(row interface {
	Scan(dest ...interface{}) error
}) (*MetricDBModel, error) {
	var model MetricDBModel
	var unit sql.NullString

	err := row.Scan(
		&model.ID,
		&model.Category,
		&model.Name,
		&model.Value,
		&unit,
		&model.Source,
		&model.CollectedAt,
		&model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if unit.Valid {
		model.Unit = unit.String
	}

	return &model, nil
}

// AlertDBModel представляет алерт в БД
type AlertDBModel struct {
	ID             string
	AlertID        string
	RuleName       string
	Severity       string
	Status         string
	Message        string
	Metric         string
	CurrentValue   float64
	ThresholdValue float64
	Source         string
	CreatedAt      time.Time
	LastSeenAt     time.Time
	ResolvedAt     sql.NullTime
	Acknowledged   bool
}

// AlertToDBModel конвертирует Domain Entity в DB Model
func AlertToDBModel(alert *entity.Alert) *AlertDBModel {
	model := &AlertDBModel{
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
		LastSeenAt:     alert.LastSeenAt(),
		Acknowledged:   alert.Acknowledged(),
	}
	if !alert.ResolvedAt().IsZero() {
		model.ResolvedAt = sql.NullTime{Time: alert.ResolvedAt(), Valid: true}
	}
	return model
}

// AlertToEntity конвертирует DB Model в Domain Entity
func AlertToEntity(model *AlertDBModel) *entity.Alert {
	var resolvedAt time.Time
	if model.ResolvedAt.Valid {
		resolvedAt = model.ResolvedAt.Time
	}
	return entity.ReconstructAlert(
		model.ID,
		model.AlertID,
		model.RuleName,
		valueobject.Severity(model.Severity),
		valueobject.AlertStatus(model.Status),
		model.Message,
		model.Metric,
		model.CurrentValue,
		model.ThresholdValue,
		model.Source,
		model.CreatedAt,
		model.LastSeenAt,
		resolvedAt,
		model.Acknowledged,
	)
}

// ScanAlertRow сканирует строку БД в AlertDBModel
func ScanAlertRow(row interface {
	Scan(dest ...interface{}) error
}) (*AlertDBModel, error) {
	var model AlertDBModel

	err := row.Scan(
		&model.ID,
		&model.AlertID,
		&model.RuleName,
		&model.Severity,
		&model.Status,
		&model.Message,
		&model.Metric,
		&model.CurrentValue,
		&model.ThresholdValue,
		&model.Source,
		&model.CreatedAt,
		&model.LastSeenAt,
		&model.ResolvedAt,
		&model.Acknowledged,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

// HealthCheckDBModel представляет результат проверки в БД
type HealthCheckDBModel struct {
	ID             string
	ServiceName    string
	CheckType      string
	Status         string
	ResponseTimeMs float64
	ErrorMessage   sql.NullString
	CheckedAt      time.Time
}

// HealthCheckToDBModel конвертирует Domain Entity в DB Model
func HealthCheckToDBModel(result *entity.HealthCheckResult) *HealthCheckDBModel {
	model := &HealthCheckDBModel{
		ID:             result.ID(),
		ServiceName:    result.ServiceName(),
		CheckType:      result.CheckType().String(),
		Status:         result.Status().String(),
		ResponseTimeMs: result.ResponseTimeMs(),
		CheckedAt:      result.CheckedAt(),
	}
	if result.ErrorMessage() != "" {
		model.ErrorMessage = sql.NullString{String: result.ErrorMessage(), Valid: true}
	}
	return model
}

// HealthCheckToEntity конвертирует DB Model в Domain Entity
func HealthCheckToEntity(model *HealthCheckDBModel) *entity.HealthCheckResult {
	return entity.ReconstructHealthCheckResult(
		model.ID,
		model.ServiceName,
		valueobject.CheckType(model.CheckType),
		valueobject.HealthStatus(model.Status),
		model.ResponseTimeMs,
		model.ErrorMessage.String,
		model.CheckedAt,
	)
}

// ScanHealthCheckRow сканирует строку БД в HealthCheckDBModel
func ScanHealthCheckRow(row interface {
	Scan(dest ...interface{}) error
}) (*HealthCheckDBModel, error) {
	var model HealthCheckDBModel

	err := row.Scan(
		&model.ID,
		&model.ServiceName,
		&model.CheckType,
		&model.Status,
		&model.ResponseTimeMs,
		&model.ErrorMessage,
		&model.CheckedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
