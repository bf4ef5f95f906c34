package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
)

// Notifier печатает события алертов в stdout
// Канал по умолчанию: всегда доступен, не требует конфигурации
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier создает console notifier
func NewNotifier() *Notifier {
	return &Notifier{out: os.Stdout}
}

// NewNotifierWithWriter создает console notifier с указанным writer (для тестов)
func NewNotifierWithWriter(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Name возвращает имя канала
func (n *Notifier) Name() string {
	return "console"
}

// Send печатает одну строку на событие
func (n *Notifier) Send(ctx context.Context, event port.AlertEvent) error {
	alert := event.Alert

	var line string
	switch event.Kind {
	case port.AlertEventResolved:
		line = fmt.Sprintf("[%s] RESOLVED [%s] %s: %s\n",
			event.Timestamp.Format(time.RFC3339),
			alert.Severity().String(),
			alert.RuleName(),
			alert.Message())
	default:
		line = fmt.Sprintf("[%s] ALERT [%s] %s: %s (value: %.2f, threshold: %.2f)\n",
			event.Timestamp.Format(time.RFC3339),
			alert.Severity().String(),
			alert.RuleName(),
			alert.Message(),
			alert.CurrentValue(),
			alert.ThresholdValue())
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprint(n.out, line)
	return err
}
