package port

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// AlertEventKind — вид события жизненного цикла алерта
type AlertEventKind string

const (
	AlertEventCreated  AlertEventKind = "CREATED"
	AlertEventResolved AlertEventKind = "RESOLVED"
)

// AlertEvent — событие для доставки по каналам уведомлений.
// Обновления уже ACTIVE алерта событий не порождают:
// нотификации достойны только создание и разрешение
type AlertEvent struct {
	Kind      AlertEventKind
	Alert     *entity.Alert
	Timestamp time.Time
	Hostname  string
}

// Notifier определяет один канал доставки уведомлений (Port)
// Доставка best-effort: ошибка канала логируется диспетчером
// и не влияет на другие каналы
type Notifier interface {
	// Name возвращает имя канала для логов
	Name() string

	// Send доставляет событие; ctx несет таймаут канала
	Send(ctx context.Context, event AlertEvent) error
}
