package system

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop drives a Runner at a fixed period. dt is measured from the previous
// iteration; late ticks are not caught up.
type Loop struct {
	runner *Runner
	period time.Duration
	log    *zap.Logger
	clock  func() time.Time

	// OnTick runs before the systems with the tick's wall-clock time.
	OnTick func(now time.Time)
}

func NewLoop(runner *Runner, period time.Duration, log *zap.Logger) *Loop {
	return &Loop{
		runner: runner,
		period: period,
		log:    log,
		clock:  time.Now,
	}
}

// Step runs one tick at now with the given elapsed time.
func (l *Loop) Step(now time.Time, dt time.Duration) {
	if l.OnTick != nil {
		l.OnTick(now)
	}
	l.runner.Tick(dt)
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	last := l.clock()
	l.log.Info("tick loop started", zap.Duration("period", l.period), zap.Int("systems", l.runner.Len()))
	for {
		select {
		case <-ctx.Done():
			l.log.Info("tick loop stopped")
			return
		case <-ticker.C:
			now := l.clock()
			dt := now.Sub(last)
			last = now
			l.Step(now, dt)
		}
	}
}
