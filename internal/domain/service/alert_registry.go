package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// AlertRegistry хранит текущее состояние алертов по alertID (Domain Service)
// Реализует дедупликацию: не более одного ACTIVE алерта на alertID.
// Доступ защищен мьютексом — пас оценки правил является единственным
// писателем, HTTP-запросы читают конкурентно
type AlertRegistry struct {
	mu     sync.Mutex
	active map[string]*entity.Alert
}

// NewAlertRegistry создает пустой реестр алертов
func NewAlertRegistry() *AlertRegistry {
	return &AlertRegistry{
		active: make(map[string]*entity.Alert),
	}
}

// Restore заполняет реестр ACTIVE алертами из хранилища при старте
func (r *AlertRegistry) Restore(alerts []*entity.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, alert := range alerts {
		if alert.IsActive() {
			r.active[alert.AlertID()] = alert
		}
	}
}

// Upsert применяет срабатывание правила к реестру.
// Возвращает алерт и признак isNew: true — создан новый ACTIVE алерт,
// false — существующий обновлен на месте (createdAt сохранен)
func (r *AlertRegistry) Upsert(trigger RuleTrigger, now time.Time) (*entity.Alert, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.active[trigger.AlertID]; ok {
		if err := existing.Refresh(trigger.CurrentValue, trigger.Message, now); err != nil {
			return nil, false, fmt.Errorf("failed to refresh alert %s: %w", trigger.AlertID, err)
		}
		return existing, false, nil
	}

	alert, err := entity.NewAlert(
		trigger.AlertID,
		trigger.RuleName,
		trigger.Severity,
		trigger.Message,
		trigger.Metric,
		trigger.CurrentValue,
		trigger.Threshold,
		trigger.Source,
		now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create alert %s: %w", trigger.AlertID, err)
	}

	r.active[trigger.AlertID] = alert
	return alert, true, nil
}

// ResolveMissing разрешает все ACTIVE алерты, чьи alertID отсутствуют
// в множестве сработавших на текущем тике.
// Возвращает разрешенные алерты для нотификации.
// Повторное срабатывание после resolve создаст новый алерт,
// а не переоткроет разрешенный
func (r *AlertRegistry) ResolveMissing(seen map[string]struct{}, now time.Time) []*entity.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := make([]*entity.Alert, 0)
	for alertID, alert := range r.active {
		if _, stillFiring := seen[alertID]; stillFiring {
			continue
		}
		if err := alert.Resolve(now); err != nil {
			continue
		}
		delete(r.active, alertID)
		resolved = append(resolved, alert)
	}

	return resolved
}

// Acknowledge помечает ACTIVE алерт подтвержденным по alertID
func (r *AlertRegistry) Acknowledge(alertID string) (*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.active[alertID]
	if !ok {
		return nil, fmt.Errorf("no active alert with id %s", alertID)
	}
	if err := alert.Acknowledge(); err != nil {
		return nil, err
	}
	return alert, nil
}

// ActiveAlerts возвращает ACTIVE алерты, отсортированные
// CRITICAL -> WARNING -> INFO, затем по времени создания (новые первыми)
func (r *AlertRegistry) ActiveAlerts() []*entity.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	alerts := make([]*entity.Alert, 0, len(r.active))
	for _, alert := range r.active {
		alerts = append(alerts, alert)
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity().Rank() != alerts[j].Severity().Rank() {
			return alerts[i].Severity().Rank() > alerts[j].Severity().Rank()
		}
		return alerts[i].CreatedAt().After(alerts[j].CreatedAt())
	})

	return alerts
}

// ActiveCount возвращает количество ACTIVE алертов
func (r *AlertRegistry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
