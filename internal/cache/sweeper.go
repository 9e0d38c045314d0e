package cache

import (
	"context"
	"log"
	"time"
)

// RunSweeper periodically removes expired entries until ctx is cancelled.
// Interrupting a pass is harmless: a later run removes the same or fewer
// items.
func RunSweeper[V any](ctx context.Context, c *Dynamic[V], interval time.Duration, logger *log.Logger) {
	if c == nil {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := c.CleanupExpired()
			if removed > 0 && logger != nil {
				logger.Printf("[Cache] sweep removed expired entries | count=%d", removed)
			}
		}
	}
}
