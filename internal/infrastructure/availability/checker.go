package availability

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything whose liveness can be probed
type Pinger interface {
	Ping() error
}

// Checker probes a dependency a fixed number of times at a linear interval.
// After the last failed attempt it gives up for good; there is no background
// retry once Wait returns an error.
type Checker struct {
	attempts int
	interval time.Duration
	logger   *zap.Logger
}

// NewChecker creates a checker with the given attempt budget
func NewChecker(attempts int, interval time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		attempts: attempts,
		interval: interval,
		logger:   logger,
	}
}

// Wait pings until the dependency answers or the attempt budget runs out
func (c *Checker) Wait(ctx context.Context, name string, target Pinger) error {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = target.Ping()
		if lastErr == nil {
			c.logger.Info("dependency is available",
				zap.String("dependency", name),
				zap.Int("attempt", attempt),
			)
			return nil
		}

		c.logger.Warn("dependency not ready",
			zap.String("dependency", name),
			zap.Int("attempt", attempt),
			zap.Int("attempts_left", c.attempts-attempt),
			zap.Error(lastErr),
		)

		if attempt < c.attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.interval):
			}
		}
	}

	c.logger.Error("giving up on dependency",
		zap.String("dependency", name),
		zap.Error(lastErr),
	)
	return lastErr
}
