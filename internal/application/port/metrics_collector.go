package port

import (
	"context"

	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

// RawMetric представляет сырую метрику от collector'а
// Используется для передачи данных между Infrastructure и Application слоями
type RawMetric struct {
	Category valueobject.MetricCategory
	Name     string
	Value    float64
	Unit     string
}

// MetricsCollector определяет интерфейс сбора метрик (Port)
// Контракт: синхронный вызов, не дольше интервала тика;
// отказ отдельного измерения логируется и сэмпл опускается,
// частичный результат — не ошибка
type MetricsCollector interface {
	// CollectAll собирает все доступные метрики
	CollectAll(ctx context.Context) ([]RawMetric, error)
}
