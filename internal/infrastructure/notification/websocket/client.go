package websocket

import (
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	// Дедлайн на запись одного кадра
	writeWait = 10 * time.Second

	// Срок ожидания pong; соединение без pong считается мертвым
	pongWait = 60 * time.Second

	// Интервал ping, заведомо меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// Дашборд ничего не шлет кроме pong, входящие кадры минимальны
	inboundLimit = 512

	// Буфер исходящих кадров на клиента
	sendBufferSize = 256
)

// Message — кадр потока дашборда
type Message struct {
	Type string      `json:"type"` // "snapshot" или "alert"
	Data interface{} `json:"data"`
}

func snapshotMessage(snapshot *dto.MetricSnapshotDTO) Message {
	return Message{Type: "snapshot", Data: snapshot}
}

func alertMessage(event *dto.AlertEventDTO) Message {
	return Message{Type: "alert", Data: event}
}

// Client — одно подписанное на поток дашборда соединение
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	logger *logger.Logger
}

// NewClient оборачивает установленное соединение в клиента hub
func NewClient(hub *Hub, conn *websocket.Conn, logger *logger.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		logger: logger,
	}
}

// ReadPump вычитывает входящие кадры до разрыва соединения.
// Полезных данных клиент не присылает — цикл нужен для обработки pong
// и детекции разрыва. Запускается в отдельной goroutine
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(inboundLimit)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("WebSocket set read deadline error", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket read error", err)
			}
			return
		}
	}
}

// WritePump доставляет кадры из send и поддерживает соединение ping'ами.
// Запускается в отдельной goroutine
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// Hub отключил клиента
				_ = c.writeControl(websocket.CloseMessage)
				return
			}
			if err := c.writeFrame(message); err != nil {
				c.logger.Error("WebSocket write error", err)
				return
			}

		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeFrame(message Message) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(message)
}

func (c *Client) writeControl(messageType int) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, nil)
}
