package collector

import (
	"context"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryCollector собирает метрики памяти
type MemoryCollector struct{}

// NewMemoryCollector создает новый Memory collector
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Collect собирает Memory метрики
func (c *MemoryCollector) Collect(ctx context.Context) ([]port.RawMetric, error) {
	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	metrics := []port.RawMetric{
		{
			Category: valueobject.System,
			Name:     "memory.usage",
			Value:    vmStat.UsedPercent,
			Unit:     "%",
		},
		{
			Category: valueobject.System,
			Name:     "memory.available",
			Value:    float64(vmStat.Available) / 1024 / 1024,
			Unit:     "MB",
		},
	}

	return metrics, nil
}
