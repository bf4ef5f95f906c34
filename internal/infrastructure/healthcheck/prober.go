package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// Prober выполняет активные проверки сервисов
// Реализует интерфейс port.HealthProber
type Prober struct {
	httpChecker    *HTTPChecker
	portChecker    *PortChecker
	processChecker *ProcessChecker
	logger         *logger.Logger
}

// NewProber создает новый Prober со всеми видами проверок
func NewProber(logger *logger.Logger) *Prober {
	return &Prober{
		httpChecker:    NewHTTPChecker(),
		portChecker:    NewPortChecker(),
		processChecker: NewProcessChecker(),
		logger:         logger,
	}
}

// Check выполняет проверку согласно виду в spec.
// Никогда не возвращает nil: любой отказ, включая таймаут,
// превращается в UNHEALTHY результат с текстом ошибки
func (p *Prober) Check(ctx context.Context, spec port.ServiceSpec) *entity.HealthCheckResult {
	var healthy bool
	var responseTimeMs float64
	var errorMessage string

	switch spec.Type {
	case valueobject.CheckHTTP:
		healthy, responseTimeMs, errorMessage = p.httpChecker.Check(ctx, spec.URL)
	case valueobject.CheckPort:
		healthy, responseTimeMs, errorMessage = p.portChecker.Check(ctx, spec.Host, spec.Port)
	case valueobject.CheckProcess:
		healthy, responseTimeMs, errorMessage = p.processChecker.Check(ctx, spec.ProcessName)
	default:
		healthy, errorMessage = false, fmt.Sprintf("unsupported check type: %s", spec.Type)
	}

	status := valueobject.StatusHealthy
	if !healthy {
		status = valueobject.StatusUnhealthy
	}

	result, err := entity.NewHealthCheckResult(
		spec.Name,
		spec.Type,
		status,
		responseTimeMs,
		errorMessage,
		time.Now().UTC(),
	)
	if err != nil {
		// Спецификация сервиса прошла валидацию конфига, сюда не попадаем,
		// но на всякий случай возвращаем UNKNOWN вместо nil
		p.logger.Error("Failed to build check result", err, "service", spec.Name)
		result, _ = entity.NewHealthCheckResult(spec.Name, valueobject.CheckHTTP, valueobject.StatusUnknown, 0, err.Error(), time.Now().UTC())
	}
	return result
}
