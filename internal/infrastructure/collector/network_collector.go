package collector

import (
	"context"
	"sync"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/shirou/gopsutil/v3/net"
)

// NetworkCollector собирает метрики сети.
// Скорости вычисляются как дельта между последовательными вызовами,
// поэтому первый вызов возвращает пустой результат
type NetworkCollector struct {
	mu            sync.Mutex
	lastStats     *net.IOCountersStat
	lastCheckTime time.Time
}

// NewNetworkCollector создает новый Network collector
func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{}
}

// Collect собирает Network метрики
func (c *NetworkCollector) Collect(ctx context.Context) ([]port.RawMetric, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	currentTime := time.Now()
	currentStats := stats[0]

	var metrics []port.RawMetric

	if c.lastStats != nil {
		duration := currentTime.Sub(c.lastCheckTime).Seconds()
		if duration > 0 {
			sentPerSec := float64(currentStats.BytesSent-c.lastStats.BytesSent) / duration / 1024
			recvPerSec := float64(currentStats.BytesRecv-c.lastStats.BytesRecv) / duration / 1024

			metrics = append(metrics,
				port.RawMetric{
					Category: valueobject.System,
					Name:     "network.sent_rate",
					Value:    sentPerSec,
					Unit:     "KB/s",
				},
				port.RawMetric{
					Category: valueobject.System,
					Name:     "network.recv_rate",
					Value:    recvPerSec,
					Unit:     "KB/s",
				},
			)
		}
	}

	c.lastStats = &currentStats
	c.lastCheckTime = currentTime

	return metrics, nil
}
