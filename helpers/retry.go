package helpers

import (
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
)

// Retry wraps a fallible operation with bounded re-execution and a fixed
// inter-attempt delay. On exhaustion the last failure is returned.
type Retry struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn up to MaxAttempts times. Each failed attempt is logged with
// the attempt index, ceiling, and operation name before sleeping Delay.
func (r Retry) Do(name string, fn func() error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		logger.Warn("Attempt %d/%d failed for '%s': %v", attempt, attempts, name, lastErr)

		if attempt < attempts {
			time.Sleep(r.Delay)
		}
	}

	logger.Error("Operation '%s' failed after %d attempts", name, attempts)
	return lastErr
}
