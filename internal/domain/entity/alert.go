package entity

import (
	"errors"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/google/uuid"
)

// Alert представляет текущее или прошлое нарушение правила (Aggregate Root)
// Инварианты: не более одного ACTIVE алерта на alertID;
// переход ACTIVE -> RESOLVED односторонний
type Alert struct {
	id             string
	alertID        string
	ruleName       string
	severity       valueobject.Severity
	status         valueobject.AlertStatus
	message        string
	metric         string
	currentValue   float64
	thresholdValue float64
	source         string
	createdAt      time.Time
	lastSeenAt     time.Time
	resolvedAt     time.Time
	acknowledged   bool
}

// NewAlert создает новый ACTIVE алерт (Factory Method)
func NewAlert(
	alertID string,
	ruleName string,
	severity valueobject.Severity,
	message string,
	metric string,
	currentValue float64,
	thresholdValue float64,
	source string,
	now time.Time,
) (*Alert, error) {
	if alertID == "" {
		return nil, errors.New("alert id cannot be empty")
	}
	if ruleName == "" {
		return nil, errors.New("rule name cannot be empty")
	}
	if err := severity.Validate(); err != nil {
		return nil, err
	}

	return &Alert{
		id:             uuid.New().String(),
		alertID:        alertID,
		ruleName:       ruleName,
		severity:       severity,
		status:         valueobject.AlertStatusActive,
		message:        message,
		metric:         metric,
		currentValue:   currentValue,
		thresholdValue: thresholdValue,
		source:         source,
		createdAt:      now,
		lastSeenAt:     now,
	}, nil
}

// ReconstructAlert восстанавливает алерт из хранилища (для Repository)
func ReconstructAlert(
	id string,
	alertID string,
	ruleName string,
	severity valueobject.Severity,
	status valueobject.AlertStatus,
	message string,
	metric string,
	currentValue float64,
	thresholdValue float64,
	source string,
	createdAt, lastSeenAt, resolvedAt time.Time,
	acknowledged bool,
) *Alert {
	return &Alert{
		id:             id,
		alertID:        alertID,
		ruleName:       ruleName,
		severity:       severity,
		status:         status,
		message:        message,
		metric:         metric,
		currentValue:   currentValue,
		thresholdValue: thresholdValue,
		source:         source,
		createdAt:      createdAt,
		lastSeenAt:     lastSeenAt,
		resolvedAt:     resolvedAt,
		acknowledged:   acknowledged,
	}
}

// ID возвращает идентификатор записи в хранилище
func (a *Alert) ID() string {
	return a.id
}

// AlertID возвращает ключ дедупликации (ruleName + "_" + metric)
func (a *Alert) AlertID() string {
	return a.alertID
}

// RuleName возвращает имя сработавшего правила
func (a *Alert) RuleName() string {
	return a.ruleName
}

// Severity возвращает уровень важности
func (a *Alert) Severity() valueobject.Severity {
	return a.severity
}

// Status возвращает текущий статус
func (a *Alert) Status() valueobject.AlertStatus {
	return a.status
}

// Message возвращает человекочитаемое описание нарушения
func (a *Alert) Message() string {
	return a.message
}

// Metric возвращает имя нарушившей метрики
func (a *Alert) Metric() string {
	return a.metric
}

// CurrentValue возвращает последнее наблюдавшееся значение
func (a *Alert) CurrentValue() float64 {
	return a.currentValue
}

// ThresholdValue возвращает порог правила
func (a *Alert) ThresholdValue() float64 {
	return a.thresholdValue
}

// Source возвращает источник метрики
func (a *Alert) Source() string {
	return a.source
}

// CreatedAt возвращает время создания алерта
func (a *Alert) CreatedAt() time.Time {
	return a.createdAt
}

// LastSeenAt возвращает время последнего подтверждения нарушения
func (a *Alert) LastSeenAt() time.Time {
	return a.lastSeenAt
}

// ResolvedAt возвращает время разрешения (zero value пока ACTIVE)
func (a *Alert) ResolvedAt() time.Time {
	return a.resolvedAt
}

// Acknowledged возвращает флаг подтверждения оператором
func (a *Alert) Acknowledged() bool {
	return a.acknowledged
}

// IsActive проверяет, активен ли алерт
func (a *Alert) IsActive() bool {
	return a.status == valueobject.AlertStatusActive
}

// Refresh обновляет значение и сообщение у ACTIVE алерта на месте.
// createdAt сохраняется — повторное срабатывание не создает дубликат
func (a *Alert) Refresh(currentValue float64, message string, now time.Time) error {
	if a.status == valueobject.AlertStatusResolved {
		return errors.New("cannot refresh resolved alert")
	}
	a.currentValue = currentValue
	a.message = message
	a.lastSeenAt = now
	return nil
}

// Resolve переводит алерт в RESOLVED (односторонний переход)
func (a *Alert) Resolve(now time.Time) error {
	if a.status == valueobject.AlertStatusResolved {
		return errors.New("alert already resolved")
	}
	a.status = valueobject.AlertStatusResolved
	a.resolvedAt = now
	return nil
}

// Acknowledge помечает алерт как подтвержденный оператором
func (a *Alert) Acknowledge() error {
	if a.status != valueobject.AlertStatusActive {
		return errors.New("only active alerts can be acknowledged")
	}
	a.acknowledged = true
	return nil
}
