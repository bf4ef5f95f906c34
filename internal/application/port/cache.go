package port

import "context"

// Cache определяет интерфейс кеша для read-path запросов (Port)
type Cache interface {
	// Get читает значение по ключу в dest; ошибка при промахе
	Get(ctx context.Context, key string, dest interface{}) error

	// Set сохраняет значение с TTL кеша
	Set(ctx context.Context, key string, value interface{}) error

	// Close закрывает соединение
	Close() error
}
