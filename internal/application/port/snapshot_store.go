package port

import "github.com/dreschagin/monitoring-engine/internal/domain/entity"

// SnapshotStore хранит самый свежий сэмпл каждой метрики (Port)
// Обеспечивает O(1) доступ для оценки правил;
// реализация — in-memory store в Infrastructure слое
type SnapshotStore interface {
	// Record запоминает метрики тика, перезаписывая более старые сэмплы
	Record(metrics []*entity.Metric)

	// Latest возвращает самый свежий сэмпл метрики по имени
	Latest(name string) (*entity.Metric, bool)

	// LatestAll возвращает последние сэмплы всех известных метрик
	LatestAll() []*entity.Metric
}
