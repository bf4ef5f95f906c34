package collector

import (
	"context"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
	"github.com/shirou/gopsutil/v3/disk"
)

// DiskCollector собирает метрики дисков
type DiskCollector struct {
	path string
}

// NewDiskCollector создает новый Disk collector для указанного раздела
func NewDiskCollector(path string) *DiskCollector {
	if path == "" {
		path = "/"
	}
	return &DiskCollector{path: path}
}

// Collect собирает Disk метрики
func (c *DiskCollector) Collect(ctx context.Context) ([]port.RawMetric, error) {
	usage, err := disk.UsageWithContext(ctx, c.path)
	if err != nil {
		return nil, err
	}

	metrics := []port.RawMetric{
		{
			Category: valueobject.System,
			Name:     "disk.usage",
			Value:    usage.UsedPercent,
			Unit:     "%",
		},
		{
			Category: valueobject.System,
			Name:     "disk.free",
			Value:    float64(usage.Free) / 1024 / 1024 / 1024,
			Unit:     "GB",
		},
	}

	return metrics, nil
}
