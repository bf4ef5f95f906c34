package websocket

import (
	"sync"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Hub управляет WebSocket клиентами и рассылает сообщения
// Реализует интерфейс port.NotificationStream
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Канал для broadcast снимков метрик
	broadcast chan *dto.MetricSnapshotDTO

	// Канал для broadcast событий алертов
	broadcastAlert chan *dto.AlertEventDTO

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для удаления клиентов
	unregister chan *Client

	// Mutex для защиты clients map
	mu sync.RWMutex

	// Logger
	logger *logger.Logger
}

// NewHub создает новый WebSocket hub
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		broadcast:      make(chan *dto.MetricSnapshotDTO, 256),
		broadcastAlert: make(chan *dto.AlertEventDTO, 256),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		logger:         logger,
	}
}

// Run запускает hub (должен быть запущен в отдельной goroutine)
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client registered", "total_clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client unregistered", "total_clients", total)

		case snapshot := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- snapshotMessage(snapshot):
					// Сообщение отправлено
				default:
					// Канал клиента заполнен, закрываем соединение
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("Client channel full, disconnected")
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcastAlert:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- alertMessage(event):
					// Событие отправлено
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("Alert broadcasted to clients", "kind", event.Kind)
		}
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastSnapshot отправляет снимок метрик всем клиентам
func (h *Hub) BroadcastSnapshot(snapshot *dto.MetricSnapshotDTO) {
	select {
	case h.broadcast <- snapshot:
		// Снимок отправлен в канал
	default:
		h.logger.Warn("Broadcast channel full, dropping snapshot")
	}
}

// BroadcastAlert отправляет событие алерта всем клиентам
func (h *Hub) BroadcastAlert(event *dto.AlertEventDTO) {
	select {
	case h.broadcastAlert <- event:
		// Событие отправлено в канал
	default:
		h.logger.Warn("Broadcast alert channel full, dropping event")
	}
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
