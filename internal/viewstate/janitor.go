package viewstate

import (
	"context"
	"time"

	"jobprep-web/internal/shared/telemetry"
)

// Sweep deletes instances idle for longer than ttl.
func Sweep(ctx context.Context, repo Repo, ttl time.Duration, now time.Time) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	return repo.DeleteIdleSince(ctx, now.Add(-ttl))
}

// RunJanitor sweeps on every tick until ctx is done.
func RunJanitor(ctx context.Context, repo Repo, ttl, every time.Duration) {
	if ttl <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			n, err := Sweep(ctx, repo, ttl, t.UTC())
			if err != nil {
				telemetry.Err("viewstate.sweep_failed", err, nil)
				continue
			}
			if n > 0 {
				telemetry.Info("viewstate.swept", map[string]any{"expired": n})
			}
		}
	}
}
