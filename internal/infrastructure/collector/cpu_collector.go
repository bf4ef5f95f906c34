package collector

import (
	"context"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
)

// CPUCollector собирает метрики CPU
type CPUCollector struct{}

// NewCPUCollector создает новый CPU collector
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Collect собирает CPU метрики
func (c *CPUCollector) Collect(ctx context.Context) ([]port.RawMetric, error) {
	// Процент использования CPU за 1 секунду
	percentages, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return nil, err
	}

	var metrics []port.RawMetric

	if len(percentages) > 0 {
		metrics = append(metrics, port.RawMetric{
			Category: valueobject.System,
			Name:     "cpu.usage",
			Value:    percentages[0],
			Unit:     "%",
		})
	}

	// Load average доступен не на всех платформах — пропускаем молча
	if avg, err := load.AvgWithContext(ctx); err == nil {
		metrics = append(metrics, port.RawMetric{
			Category: valueobject.System,
			Name:     "cpu.load1",
			Value:    avg.Load1,
		})
	}

	return metrics, nil
}
