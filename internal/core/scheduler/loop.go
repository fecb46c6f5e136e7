package scheduler

import (
	"context"
	"time"

	"github.com/zeusync/weather/internal/core/observability/log"
)

// Loop drives a Clock from wall time, one tick per TickDuration.
type Loop struct {
	clock        *Clock
	tickDuration time.Duration
	logger       log.Log
}

// NewLoop creates a realtime driver. A non-positive tick defaults to one second.
func NewLoop(clock *Clock, tick time.Duration, logger log.Log) *Loop {
	if tick <= 0 {
		tick = time.Second
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loop{clock: clock, tickDuration: tick, logger: logger}
}

// Run advances the clock until ctx is cancelled. Cancellation is a clean stop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tickDuration)
	defer ticker.Stop()

	l.logger.Info("scheduler loop started", log.Duration("tick", l.tickDuration))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("scheduler loop stopped", log.Uint64("tick", uint64(l.clock.Now())))
			return nil
		case <-ticker.C:
			l.clock.Advance(1)
		}
	}
}
