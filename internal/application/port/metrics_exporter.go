package port

import (
	"context"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// MetricsExporter defines the interface for exporting collected metrics
// to an external observability platform (e.g. CloudWatch)
type MetricsExporter interface {
	// PublishBatch buffers metrics for batched export
	PublishBatch(ctx context.Context, metrics []*entity.Metric) error

	// Flush forces immediate publication of buffered metrics
	Flush(ctx context.Context) error

	// Close stops background flushing and releases resources
	Close(ctx context.Context) error
}
