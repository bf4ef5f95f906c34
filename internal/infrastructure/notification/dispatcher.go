package notification

import (
	"context"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Таймаут доставки по одному каналу
const channelTimeout = 10 * time.Second

// Dispatcher доставляет события алертов во все включенные каналы.
// Реализует port.Dispatcher.
// Каналы независимы: отказ или таймаут одного не влияет на другие,
// ошибки логируются и не распространяются в пайплайн оценки правил
type Dispatcher struct {
	notifiers []port.Notifier
	logger    *logger.Logger
}

// NewDispatcher создает dispatcher с набором каналов
func NewDispatcher(notifiers []port.Notifier, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Dispatch рассылает событие по всем каналам параллельно
// и дожидается завершения всех доставок
func (d *Dispatcher) Dispatch(event port.AlertEvent) {
	var wg sync.WaitGroup
	for _, notifier := range d.notifiers {
		wg.Add(1)
		go func(n port.Notifier) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), channelTimeout)
			defer cancel()

			if err := n.Send(ctx, event); err != nil {
				d.logger.Error("Notification delivery failed", err,
					"channel", n.Name(),
					"alert_id", event.Alert.AlertID(),
					"kind", string(event.Kind))
				return
			}
			d.logger.Debug("Notification delivered",
				"channel", n.Name(),
				"alert_id", event.Alert.AlertID())
		}(notifier)
	}
	wg.Wait()
}
