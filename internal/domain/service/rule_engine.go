package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// MetricSnapshot предоставляет последние значения метрик для оценки правил
type MetricSnapshot interface {
	// Latest возвращает самый свежий сэмпл метрики по имени
	Latest(name string) (*entity.Metric, bool)
}

// RuleTrigger представляет срабатывание одного правила на текущем тике
type RuleTrigger struct {
	AlertID      string
	RuleName     string
	Severity     valueobject.Severity
	Metric       string
	CurrentValue float64
	Threshold    float64
	Message      string
	Source       string
}

// RuleEngine оценивает пороговые правила по снимку метрик (Domain Service)
// Для правил с min_duration отслеживает момент первого нарушения:
// срабатывание происходит только когда условие держится непрерывно
// не меньше min_duration
type RuleEngine struct {
	mu sync.Mutex
	// alertID -> момент первого нарушения;
	// нулевое время означает, что окно уже считается истекшим
	firstTrue map[string]time.Time
}

// NewRuleEngine создает новый RuleEngine
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{
		firstTrue: make(map[string]time.Time),
	}
}

// Prime помечает окна min_duration как уже истекшие для указанных alertID.
// Вызывается при восстановлении ACTIVE алертов после рестарта: существующий
// ACTIVE алерт означает, что окно уже было набрано до рестарта, и первый же
// тик с нарушением должен подтвердить алерт, а не открывать окно заново.
// Прайминг снимается как обычно — восстановлением метрики или ее пропаданием
func (e *RuleEngine) Prime(alertIDs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range alertIDs {
		e.firstTrue[id] = time.Time{}
	}
}

// Evaluate оценивает все правила по снимку метрик.
// Правило с отсутствующей метрикой пропускается без ошибки.
// Порядок оценки правил не специфицирован — правила независимы
func (e *RuleEngine) Evaluate(rules []entity.AlertRule, snapshot MetricSnapshot, now time.Time) []RuleTrigger {
	e.mu.Lock()
	defer e.mu.Unlock()

	triggers := make([]RuleTrigger, 0)

	for _, rule := range rules {
		metric, ok := snapshot.Latest(rule.Metric())
		if !ok {
			// Метрика еще не собиралась — не ошибка и не срабатывание
			delete(e.firstTrue, rule.AlertID())
			continue
		}

		value := metric.Value()
		if !rule.Condition().Holds(value, rule.Threshold()) {
			delete(e.firstTrue, rule.AlertID())
			continue
		}

		if rule.MinDuration() > 0 {
			first, seen := e.firstTrue[rule.AlertID()]
			if !seen {
				e.firstTrue[rule.AlertID()] = now
				continue
			}
			if !first.IsZero() && now.Sub(first) < rule.MinDuration() {
				continue
			}
		}

		triggers = append(triggers, RuleTrigger{
			AlertID:      rule.AlertID(),
			RuleName:     rule.Name(),
			Severity:     rule.Severity(),
			Metric:       rule.Metric(),
			CurrentValue: value,
			Threshold:    rule.Threshold(),
			Message:      renderMessage(rule, value),
			Source:       metric.Source(),
		})
	}

	return triggers
}

// messageTemplates — шаблоны сообщений для известных правил.
// Формат: (значение, порог)
var messageTemplates = map[string]string{
	"high_cpu_usage":    "High CPU usage detected: %.1f%% (threshold: %.1f%%)",
	"high_memory_usage": "High memory usage detected: %.1f%% (threshold: %.1f%%)",
	"low_disk_space":    "Low disk space: %.1f%% used (threshold: %.1f%%)",
	"service_down":      "Service health degraded: %.0f (threshold: %.0f)",
	"slow_response":     "Slow response time: %.0fms (threshold: %.0fms)",
}

// renderMessage формирует сообщение по шаблону правила
// с generic fallback для неизвестных имен правил
func renderMessage(rule entity.AlertRule, value float64) string {
	if tmpl, ok := messageTemplates[rule.Name()]; ok {
		return fmt.Sprintf(tmpl, value, rule.Threshold())
	}
	return fmt.Sprintf("Rule %s triggered: %s=%.2f (threshold %s %.2f)",
		rule.Name(), rule.Metric(), value, rule.Condition().String(), rule.Threshold())
}
