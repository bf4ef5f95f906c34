package usecase

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/dto"
	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/repository"
	"github.com/dreschagin/monitoring-engine/internal/domain/service"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Субъекты брокера для событий жизненного цикла алертов
const (
	SubjectAlertCreated  = "alerts.created"
	SubjectAlertResolved = "alerts.resolved"
)

// EvaluateAlertsUseCase оценивает правила по снимку метрик
// и управляет жизненным циклом алертов
type EvaluateAlertsUseCase struct {
	rules      []entity.AlertRule
	engine     *service.RuleEngine
	registry   *service.AlertRegistry
	alertRepo  repository.AlertRepository
	snapshot   port.SnapshotStore
	dispatcher port.Dispatcher
	stream     port.NotificationStream
	publisher  port.EventPublisher // может быть nil если NATS отключен
	hostname   string
	logger     *logger.Logger
}

// NewEvaluateAlertsUseCase создает новый use case
func NewEvaluateAlertsUseCase(
	rules []entity.AlertRule,
	engine *service.RuleEngine,
	registry *service.AlertRegistry,
	alertRepo repository.AlertRepository,
	snapshot port.SnapshotStore,
	dispatcher port.Dispatcher,
	stream port.NotificationStream,
	publisher port.EventPublisher,
	hostname string,
	logger *logger.Logger,
) *EvaluateAlertsUseCase {
	return &EvaluateAlertsUseCase{
		rules:      rules,
		engine:     engine,
		registry:   registry,
		alertRepo:  alertRepo,
		snapshot:   snapshot,
		dispatcher: dispatcher,
		stream:     stream,
		publisher:  publisher,
		hostname:   hostname,
		logger:     logger,
	}
}

// Execute выполняет один пас оценки правил.
// Нотификации уходят только при создании и разрешении алерта;
// обновление уже ACTIVE алерта проходит тихо
func (uc *EvaluateAlertsUseCase) Execute(ctx context.Context, now time.Time) error {
	triggers := uc.engine.Evaluate(uc.rules, uc.snapshot, now)

	seen := make(map[string]struct{}, len(triggers))
	for _, trigger := range triggers {
		seen[trigger.AlertID] = struct{}{}

		alert, isNew, err := uc.registry.Upsert(trigger, now)
		if err != nil {
			uc.logger.Error("Failed to apply rule trigger", err, "alert_id", trigger.AlertID)
			continue
		}

		if isNew {
			uc.logger.Warn("Alert created",
				"alert_id", alert.AlertID(),
				"severity", alert.Severity().String(),
				"value", alert.CurrentValue())
			if err := uc.alertRepo.Save(ctx, alert); err != nil {
				uc.logger.Error("Failed to persist new alert", err, "alert_id", alert.AlertID())
			}
			uc.emit(ctx, port.AlertEventCreated, alert, now)
		} else {
			if err := uc.alertRepo.Update(ctx, alert); err != nil {
				uc.logger.Error("Failed to update alert", err, "alert_id", alert.AlertID())
			}
		}
	}

	for _, alert := range uc.registry.ResolveMissing(seen, now) {
		uc.logger.Info("Alert resolved", "alert_id", alert.AlertID())
		if err := uc.alertRepo.Update(ctx, alert); err != nil {
			uc.logger.Error("Failed to persist resolved alert", err, "alert_id", alert.AlertID())
		}
		uc.emit(ctx, port.AlertEventResolved, alert, now)
	}

	return nil
}

// emit рассылает событие по всем выходам: каналы уведомлений,
// WebSocket клиенты и брокер событий. Все доставки best-effort
func (uc *EvaluateAlertsUseCase) emit(ctx context.Context, kind port.AlertEventKind, alert *entity.Alert, now time.Time) {
	event := port.AlertEvent{
		Kind:      kind,
		Alert:     alert,
		Timestamp: now,
		Hostname:  uc.hostname,
	}

	if uc.dispatcher != nil {
		uc.dispatcher.Dispatch(event)
	}

	eventDTO := &dto.AlertEventDTO{
		Kind:      string(kind),
		Alert:     dto.FromAlert(alert),
		Timestamp: now,
		Hostname:  uc.hostname,
	}

	if uc.stream != nil {
		uc.stream.BroadcastAlert(eventDTO)
	}

	if uc.publisher != nil {
		subject := SubjectAlertCreated
		if kind == port.AlertEventResolved {
			subject = SubjectAlertResolved
		}
		if err := uc.publisher.PublishEvent(ctx, subject, eventDTO); err != nil {
			uc.logger.Warn("Failed to publish alert event", "subject", subject, "error", err.Error())
		}
	}
}
