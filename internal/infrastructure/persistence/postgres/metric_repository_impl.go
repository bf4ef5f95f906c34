package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	_ "github.com/lib/pq"
)

// PostgresMetricRepository реализует repository.MetricRepository для PostgreSQL
type PostgresMetricRepository struct {
	db *sql.DB
}

// NewPostgresMetricRepository создает новый PostgreSQL repository
func NewPostgresMetricRepository(db *sql.DB) *PostgresMetricRepository {
	return &PostgresMetricRepository{
		db: db,
	}
}

// SaveBatch сохраняет несколько метрик одной транзакцией
func (r *PostgresMetricRepository) SaveBatch(ctx context.Context, metrics []*entity.Metric) error {
	if len(metrics) == 0 {
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
		INSERT INTO metrics (id, category, name, value, unit, source, collected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, metric := range metrics {
		model := MetricToDBModel(metric)
		_, err = stmt.ExecContext(ctx,
			model.ID,
			model.Category,
			model.Name,
			model.Value,
			model.Unit,
			model.Source,
			model.CollectedAt,
			model.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByNameInRange находит сэмплы метрики в диапазоне,
// отсортированные по возрастанию времени
func (r *PostgresMetricRepository) FindByNameInRange(
	ctx context.Context,
	name string,
	timeRange valueobject.TimeRange,
) ([]*entity.Metric, error) {
	query := `
		SELECT id, category, name, value, unit, source, collected_at, created_at
		FROM metrics
		WHERE name = $1 AND collected_at BETWEEN $2 AND $3
		ORDER BY collected_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, name, timeRange.Start(), timeRange.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	return r.scanMetrics(rows)
}

// FindByCategoryInRange находит метрики категории в диапазоне
func (r *PostgresMetricRepository) FindByCategoryInRange(
	ctx context.Context,
	category valueobject.MetricCategory,
	timeRange valueobject.TimeRange,
) ([]*entity.Metric, error) {
	query := `
		SELECT id, category, name, value, unit, source, collected_at, created_at
		FROM metrics
		WHERE category = $1 AND collected_at BETWEEN $2 AND $3
		ORDER BY collected_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, category.String(), timeRange.Start(), timeRange.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	return r.scanMetrics(rows)
}

// DeleteOlderThan удаляет метрики, собранные раньше cutoff
func (r *PostgresMetricRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM metrics
		WHERE collected_at < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old metrics: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rowsAffected, nil
}

// scanMetrics сканирует несколько строк в слайс метрик
func (r *PostgresMetricRepository) scanMetrics(rows *sql.Rows) ([]*entity.Metric, error) {
	metrics := make([]*entity.Metric, 0)

	for rows.Next() {
		model, err := ScanMetricRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		metrics = append(metrics, MetricToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return metrics, nil
}
