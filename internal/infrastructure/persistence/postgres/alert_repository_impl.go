package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// PostgresAlertRepository реализует repository.AlertRepository для PostgreSQL
type PostgresAlertRepository struct {
	db *sql.DB
}

// NewPostgresAlertRepository создает новый PostgreSQL repository
func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{
		db: db,
	}
}

// Save сохраняет новый алерт
func (r *PostgresAlertRepository) Save(ctx context.Context, alert *entity.Alert) error {
	model := AlertToDBModel(alert)

	query := `
		INSERT INTO alerts (id, alert_id, rule_name, severity, status, message, metric,
			current_value, threshold_value, source, created_at, last_seen_at, resolved_at, acknowledged)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		model.ID,
		model.AlertID,
		model.RuleName,
		model.Severity,
		model.Status,
		model.Message,
		model.Metric,
		model.CurrentValue,
		model.ThresholdValue,
		model.Source,
		model.CreatedAt,
		model.LastSeenAt,
		model.ResolvedAt,
		model.Acknowledged,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// Update перезаписывает состояние существующего алерта
func (r *PostgresAlertRepository) Update(ctx context.Context, alert *entity.Alert) error {
	model := AlertToDBModel(alert)

	query := `
		UPDATE alerts
		SET status = $2, message = $3, current_value = $4,
			last_seen_at = $5, resolved_at = $6, acknowledged = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		model.ID,
		model.Status,
		model.Message,
		model.CurrentValue,
		model.LastSeenAt,
		model.ResolvedAt,
		model.Acknowledged,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("alert not found: %s", model.ID)
	}

	return nil
}

// FindActive находит все ACTIVE алерты
func (r *PostgresAlertRepository) FindActive(ctx context.Context) ([]*entity.Alert, error) {
	query := `
		SELECT id, alert_id, rule_name, severity, status, message, metric,
			current_value, threshold_value, source, created_at, last_seen_at, resolved_at, acknowledged
		FROM alerts
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, valueobject.AlertStatusActive.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query active alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*entity.Alert, 0)
	for rows.Next() {
		model, err := ScanAlertRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, AlertToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return alerts, nil
}

// DeleteResolvedOlderThan удаляет RESOLVED алерты, разрешенные раньше cutoff
func (r *PostgresAlertRepository) DeleteResolvedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM alerts
		WHERE status = $1 AND resolved_at < $2
	`

	result, err := r.db.ExecContext(ctx, query, valueobject.AlertStatusResolved.String(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete resolved alerts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rowsAffected, nil
}
