package app

import (
	"context"
	"time"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
)

// janitorInterval is how often idle sessions are swept.
const janitorInterval = 5 * time.Minute

// startSessionJanitor purges sessions idle for longer than maxIdle on a
// fixed interval until the context is cancelled.
func startSessionJanitor(ctx context.Context, sessions interfaces.SessionStore, maxIdle time.Duration, logger *common.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Session janitor: stopped")
			return
		case <-ticker.C:
			if removed := sessions.PurgeIdle(ctx, maxIdle); removed > 0 {
				logger.Info().Int("removed", removed).Msg("Session janitor: purged idle sessions")
			}
		}
	}
}
