package port

import "github.com/dreschagin/monitoring-engine/internal/application/dto"

// NotificationStream определяет интерфейс push-рассылки дашборду (Port)
// Реализация будет в Infrastructure слое (WebSocket Hub)
type NotificationStream interface {
	// BroadcastSnapshot отправляет снимок метрик всем подключенным клиентам
	BroadcastSnapshot(snapshot *dto.MetricSnapshotDTO)

	// BroadcastAlert отправляет событие алерта всем подключенным клиентам
	BroadcastAlert(event *dto.AlertEventDTO)

	// ClientCount возвращает количество подключенных клиентов
	ClientCount() int
}

// Dispatcher определяет fan-out доставку событий алертов (Port)
// Реализация — NotificationDispatcher в Infrastructure слое
type Dispatcher interface {
	Dispatch(event AlertEvent)
}
