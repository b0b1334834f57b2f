package collector

import (
	"context"
	"time"

	"github.com/rileyhilliard/rtop/internal/logger"
)

// SampleFunc draws one snapshot. Returning an error rejects the snapshot.
type SampleFunc[T any] func(ctx context.Context) (T, error)

// Config describes one collector.
type Config[T any] struct {
	// Name identifies the collector in logs.
	Name string
	// Interval is the initial sample interval.
	Interval time.Duration
	// Intervals delivers interval changes. A closed channel stops the collector.
	Intervals <-chan time.Duration
	// Sample draws a snapshot.
	Sample SampleFunc[T]
	// Logger receives sample failures. Defaults to logger.Default().
	Logger logger.Logger
}

// Spawn starts a collector goroutine and returns its snapshot channel. The
// channel has capacity 1 and is closed when the collector exits.
//
// The first Sample call primes platform counters and its result is dropped.
// After that the loop waits interval-elapsed before each sample, where
// elapsed is measured from the previous sample.
func Spawn[T any](ctx context.Context, cfg Config[T]) <-chan T {
	out := make(chan T, 1)
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	log = logger.Named(log, cfg.Name)

	go run(ctx, cfg, log, out)
	return out
}

func run[T any](ctx context.Context, cfg Config[T], log logger.Logger, out chan<- T) {
	defer close(out)
	defer log.Debug("%s collector stopped", cfg.Name)

	if _, err := cfg.Sample(ctx); err != nil {
		log.Debug("%s collector priming sample failed: %v", cfg.Name, err)
	}

	interval := cfg.Interval
	last := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		sleepFor := max(0, interval-time.Since(last))
		timer.Reset(sleepFor)

		select {
		case <-ctx.Done():
			return
		case d, ok := <-cfg.Intervals:
			timer.Stop()
			if !ok {
				return
			}
			if d > 0 {
				interval = d
				log.Debug("%s collector interval set to %s", cfg.Name, d)
			}
			continue
		case <-timer.C:
		}

		snap, err := cfg.Sample(ctx)
		last = time.Now()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("%s sample rejected: %v", cfg.Name, err)
			continue
		}

		select {
		case out <- snap:
		case <-ctx.Done():
			return
		}
	}
}
