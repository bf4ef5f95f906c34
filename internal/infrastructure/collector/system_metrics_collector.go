package collector

import (
	"context"
	"sync"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// SystemMetricsCollector собирает все системные метрики
// Реализует интерфейс port.MetricsCollector
type SystemMetricsCollector struct {
	cpuCollector     *CPUCollector
	memoryCollector  *MemoryCollector
	diskCollector    *DiskCollector
	networkCollector *NetworkCollector
	logger           *logger.Logger
}

// NewSystemMetricsCollector создает новый системный collector
func NewSystemMetricsCollector(diskPath string, logger *logger.Logger) *SystemMetricsCollector {
	return &SystemMetricsCollector{
		cpuCollector:     NewCPUCollector(),
		memoryCollector:  NewMemoryCollector(),
		diskCollector:    NewDiskCollector(diskPath),
		networkCollector: NewNetworkCollector(),
		logger:           logger,
	}
}

// CollectAll собирает все доступные метрики параллельно.
// Отказ отдельного измерения логируется и не прерывает остальные:
// частичный результат валиден
func (c *SystemMetricsCollector) CollectAll(ctx context.Context) ([]port.RawMetric, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	allMetrics := make([]port.RawMetric, 0)

	collectFunc := func(name string, collect func(context.Context) ([]port.RawMetric, error)) {
		defer wg.Done()
		metrics, err := collect(ctx)
		if err != nil {
			c.logger.Warn("Collector failed, samples dropped", "collector", name, "error", err.Error())
			return
		}
		mu.Lock()
		allMetrics = append(allMetrics, metrics...)
		mu.Unlock()
	}

	wg.Add(4)
	go collectFunc("cpu", c.cpuCollector.Collect)
	go collectFunc("memory", c.memoryCollector.Collect)
	go collectFunc("disk", c.diskCollector.Collect)
	go collectFunc("network", c.networkCollector.Collect)

	wg.Wait()

	return allMetrics, nil
}
