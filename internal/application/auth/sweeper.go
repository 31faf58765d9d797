package auth

import (
	"context"
	"time"

	"labtrack/internal/logging"
)

// RunSessionSweeper purges expired sessions every interval until ctx is
// cancelled. It blocks; run it on its own goroutine.
func RunSessionSweeper(ctx context.Context, svc Service, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.PurgeExpiredSessions(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error(ctx, "purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Info(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}
