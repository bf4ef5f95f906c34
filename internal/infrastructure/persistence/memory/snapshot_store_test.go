package memory

import (
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

func mustMetric(t *testing.T, name string, value float64, collectedAt time.Time) *entity.Metric {
	t.Helper()
	metric, err := entity.NewMetric(valueobject.System, name, value, "%", "test-host", collectedAt)
	if err != nil {
		t.Fatalf("NewMetric() error = %v", err)
	}
	return metric
}

func TestSnapshotStore_RecordAndLatest(t *testing.T) {
	store := NewSnapshotStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Record([]*entity.Metric{
		mustMetric(t, "cpu.usage", 42, now),
		mustMetric(t, "memory.usage", 61, now),
	})

	metric, ok := store.Latest("cpu.usage")
	if !ok {
		t.Fatalf("expected cpu.usage present")
	}
	if metric.Value() != 42 {
		t.Fatalf("unexpected value: %f", metric.Value())
	}

	if _, ok := store.Latest("disk.usage"); ok {
		t.Fatalf("expected miss for unknown metric")
	}
}

func TestSnapshotStore_NewerSampleWins(t *testing.T) {
	store := NewSnapshotStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Record([]*entity.Metric{mustMetric(t, "cpu.usage", 42, now)})
	store.Record([]*entity.Metric{mustMetric(t, "cpu.usage", 55, now.Add(30*time.Second))})

	metric, _ := store.Latest("cpu.usage")
	if metric.Value() != 55 {
		t.Fatalf("expected newer sample to win, got %f", metric.Value())
	}
}

func TestSnapshotStore_StaleSampleIgnored(t *testing.T) {
	store := NewSnapshotStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Record([]*entity.Metric{mustMetric(t, "cpu.usage", 55, now)})
	// Запоздавший сэмпл из прошлого не должен затирать свежий
	store.Record([]*entity.Metric{mustMetric(t, "cpu.usage", 42, now.Add(-time.Minute))})

	metric, _ := store.Latest("cpu.usage")
	if metric.Value() != 55 {
		t.Fatalf("expected stale sample ignored, got %f", metric.Value())
	}
}

func TestSnapshotStore_LatestAll(t *testing.T) {
	store := NewSnapshotStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Record([]*entity.Metric{
		mustMetric(t, "cpu.usage", 42, now),
		mustMetric(t, "memory.usage", 61, now),
		mustMetric(t, "disk.usage", 73, now),
	})

	all := store.LatestAll()
	if len(all) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(all))
	}
}
