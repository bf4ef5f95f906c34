package repository

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// MetricRepository определяет интерфейс хранилища метрик (Port)
// Реализация будет в Infrastructure слое
type MetricRepository interface {
	// SaveBatch сохраняет несколько метрик одной транзакцией (append-only)
	SaveBatch(ctx context.Context, metrics []*entity.Metric) error

	// FindByNameInRange возвращает сэмплы метрики в диапазоне,
	// отсортированные по возрастанию времени; пустой слайс если данных нет
	FindByNameInRange(ctx context.Context, name string, timeRange valueobject.TimeRange) ([]*entity.Metric, error)

	// FindByCategoryInRange возвращает метрики категории в диапазоне
	FindByCategoryInRange(ctx context.Context, category valueobject.MetricCategory, timeRange valueobject.TimeRange) ([]*entity.Metric, error)

	// DeleteOlderThan удаляет метрики, собранные раньше cutoff.
	// Возвращает количество удаленных записей
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
