package clock

import "time"

// Clock абстрагирует источник текущего времени для детерминированных тестов
type Clock interface {
	Now() time.Time
}

// RealClock читает время из системных часов (UTC)
type RealClock struct{}

// Now возвращает текущее время UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock — управляемые часы для тестов
type FakeClock struct {
	current time.Time
}

// NewFakeClock создает FakeClock с указанным начальным временем
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

// Now возвращает текущее установленное время
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance сдвигает время вперед на указанную длительность
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
