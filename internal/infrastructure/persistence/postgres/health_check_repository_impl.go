package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// PostgresHealthCheckRepository реализует repository.HealthCheckRepository для PostgreSQL
type PostgresHealthCheckRepository struct {
	db *sql.DB
}

// NewPostgresHealthCheckRepository создает новый PostgreSQL repository
func NewPostgresHealthCheckRepository(db *sql.DB) *PostgresHealthCheckRepository {
	return &PostgresHealthCheckRepository{
		db: db,
	}
}

// SaveBatch сохраняет результаты проверок одного тика
func (r *PostgresHealthCheckRepository) SaveBatch(ctx context.Context, results []*entity.HealthCheckResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO health_checks (id, service_name, check_type, status, response_time_ms, error_message, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		model := HealthCheckToDBModel(result)
		_, err = stmt.ExecContext(ctx,
			model.ID,
			model.ServiceName,
			model.CheckType,
			model.Status,
			model.ResponseTimeMs,
			model.ErrorMessage,
			model.CheckedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert health check: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByServiceInRange находит результаты проверок сервиса в диапазоне
func (r *PostgresHealthCheckRepository) FindByServiceInRange(
	ctx context.Context,
	serviceName string,
	timeRange valueobject.TimeRange,
) ([]*entity.HealthCheckResult, error) {
	query := `
		SELECT id, service_name, check_type, status, response_time_ms, error_message, checked_at
		FROM health_checks
		WHERE service_name = $1 AND checked_at BETWEEN $2 AND $3
		ORDER BY checked_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, serviceName, timeRange.Start(), timeRange.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query health checks: %w", err)
	}
	defer rows.Close()

	return r.scanHealthChecks(rows)
}

// FindLatestPerService находит последний результат по каждому сервису
func (r *PostgresHealthCheckRepository) FindLatestPerService(ctx context.Context) (map[string]*entity.HealthCheckResult, error) {
	query := `
		SELECT DISTINCT ON (service_name)
			id, service_name, check_type, status, response_time_ms, error_message, checked_at
		FROM health_checks
		ORDER BY service_name, checked_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest health checks: %w", err)
	}
	defer rows.Close()

	results, err := r.scanHealthChecks(rows)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*entity.HealthCheckResult, len(results))
	for _, result := range results {
		latest[result.ServiceName()] = result
	}

	return latest, nil
}

// DeleteOlderThan удаляет результаты старше cutoff
func (r *PostgresHealthCheckRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM health_checks
		WHERE checked_at < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old health checks: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rowsAffected, nil
}

// scanHealthChecks сканирует несколько строк в слайс результатов
func (r *PostgresHealthCheckRepository) scanHealthChecks(rows *sql.Rows) ([]*entity.HealthCheckResult, error) {
	results := make([]*entity.HealthCheckResult, 0)

	for rows.Next() {
		model, err := ScanHealthCheckRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health check row: %w", err)
		}
		results = append(results, HealthCheckToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, nil
}
