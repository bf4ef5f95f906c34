package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/clock"
	"github.com/dreschagin/monitoring-engine/pkg/logger"
)

// TickFunc — один шаг пайплайна мониторинга
type TickFunc func(ctx context.Context, now time.Time) error

// Scheduler запускает пайплайн мониторинга с фиксированным интервалом
// и retention sweep со своей, более редкой, каденцией.
// Шаги тика выполняются строго последовательно:
// collect -> health -> evaluate; наложения тиков пропускаются
type Scheduler struct {
	tickInterval  time.Duration
	sweepInterval time.Duration

	tickSteps []TickFunc
	sweep     TickFunc

	clock  clock.Clock
	logger *logger.Logger

	inTick atomic.Bool
	wg     sync.WaitGroup
}

// New создает scheduler с шагами тика и retention sweep
func New(
	tickInterval time.Duration,
	sweepInterval time.Duration,
	tickSteps []TickFunc,
	sweep TickFunc,
	clk clock.Clock,
	logger *logger.Logger,
) *Scheduler {
	return &Scheduler{
		tickInterval:  tickInterval,
		sweepInterval: sweepInterval,
		tickSteps:     tickSteps,
		sweep:         sweep,
		clock:         clk,
		logger:        logger,
	}
}

// Run блокируется до отмены ctx.
// Первый тик выполняется сразу, не дожидаясь интервала
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler started",
		"tick_interval", s.tickInterval.String(),
		"sweep_interval", s.sweepInterval.String())

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	sweepTicker := time.NewTicker(s.sweepInterval)
	defer sweepTicker.Stop()

	s.runTick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopping")
			s.wg.Wait()
			s.logger.Info("Scheduler stopped")
			return

		case <-ticker.C:
			s.runTick(ctx)

		case <-sweepTicker.C:
			s.runSweep(ctx)
		}
	}
}

// runTick выполняет шаги пайплайна последовательно.
// Если предыдущий тик еще не завершился, новый пропускается целиком —
// деградация под нагрузкой лучше накопления конкурентных тиков
func (s *Scheduler) runTick(ctx context.Context) {
	if !s.inTick.CompareAndSwap(false, true) {
		s.logger.Warn("Previous tick still running, skipping")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inTick.Store(false)

		now := s.clock.Now()
		start := time.Now()

		for _, step := range s.tickSteps {
			if ctx.Err() != nil {
				return
			}
			if err := step(ctx, now); err != nil {
				// Отказ шага не прерывает пайплайн: следующий шаг
				// работает с теми данными, что есть
				s.logger.Error("Tick step failed", err)
			}
		}

		s.logger.Debug("Tick completed", "duration_ms", time.Since(start).Milliseconds())
	}()
}

// runSweep запускает retention sweep вне пайплайна тика
func (s *Scheduler) runSweep(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		now := s.clock.Now()
		if err := s.sweep(ctx, now); err != nil {
			s.logger.Error("Retention sweep failed", err)
		}
	}()
}
