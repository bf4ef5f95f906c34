package repository

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// HealthCheckRepository определяет интерфейс хранилища результатов проверок (Port)
type HealthCheckRepository interface {
	// SaveBatch сохраняет результаты проверок одного тика
	SaveBatch(ctx context.Context, results []*entity.HealthCheckResult) error

	// FindByServiceInRange возвращает результаты проверок сервиса в диапазоне,
	// отсортированные по возрастанию времени
	FindByServiceInRange(ctx context.Context, serviceName string, timeRange valueobject.TimeRange) ([]*entity.HealthCheckResult, error)

	// FindLatestPerService возвращает последний результат по каждому сервису
	FindLatestPerService(ctx context.Context) (map[string]*entity.HealthCheckResult, error)

	// DeleteOlderThan удаляет результаты старше cutoff.
	// Возвращает количество удаленных записей
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
