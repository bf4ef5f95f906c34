package port

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// ServiceSpec описывает один сервис для активной проверки
type ServiceSpec struct {
	Name        string
	Type        valueobject.CheckType
	URL         string // для http
	Host        string // для port
	Port        int    // для port
	ProcessName string // для process
	Timeout     time.Duration
}

// HealthProber определяет интерфейс активных проверок (Port)
// Контракт: проверка ограничена Timeout сервиса; превышение
// классифицируется как UNHEALTHY с сообщением об ошибке,
// вызывающий никогда не блокируется дольше таймаута
type HealthProber interface {
	Check(ctx context.Context, spec ServiceSpec) *entity.HealthCheckResult
}
