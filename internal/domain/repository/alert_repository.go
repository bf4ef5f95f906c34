package repository

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// AlertRepository определяет интерфейс хранилища алертов (Port)
type AlertRepository interface {
	// Save сохраняет новый алерт
	Save(ctx context.Context, alert *entity.Alert) error

	// Update перезаписывает состояние существующего алерта
	// (обновление значения, resolve, acknowledge)
	Update(ctx context.Context, alert *entity.Alert) error

	// FindActive возвращает все ACTIVE алерты
	FindActive(ctx context.Context) ([]*entity.Alert, error)

	// DeleteResolvedOlderThan удаляет RESOLVED алерты,
	// разрешенные раньше cutoff. Возвращает количество удаленных
	DeleteResolvedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
