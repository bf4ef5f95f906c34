package memory

import (
	"sync"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
)

// SnapshotStore хранит последний сэмпл каждой метрики в памяти
// Реализует port.SnapshotStore и service.MetricSnapshot.
// Один писатель (тик сбора), конкурентные читатели (оценка правил, HTTP)
type SnapshotStore struct {
	mu     sync.RWMutex
	latest map[string]*entity.Metric
}

// NewSnapshotStore создает пустой store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		latest: make(map[string]*entity.Metric),
	}
}

// Record запоминает метрики, перезаписывая более старые сэмплы
func (s *SnapshotStore) Record(metrics []*entity.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, metric := range metrics {
		existing, ok := s.latest[metric.Name()]
		if ok && existing.CollectedAt().After(metric.CollectedAt()) {
			continue
		}
		s.latest[metric.Name()] = metric
	}
}

// Latest возвращает самый свежий сэмпл метрики по имени
func (s *SnapshotStore) Latest(name string) (*entity.Metric, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metric, ok := s.latest[name]
	return metric, ok
}

// LatestAll возвращает последние сэмплы всех известных метрик
func (s *SnapshotStore) LatestAll() []*entity.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics := make([]*entity.Metric, 0, len(s.latest))
	for _, metric := range s.latest {
		metrics = append(metrics, metric)
	}
	return metrics
}
