package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often expired admin sessions are purged.
const DefaultSweepInterval = time.Hour

// ExpiredSessionDeleter removes sessions whose expiry has passed.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SweepSessionsDeps holds dependencies for SweepSessions.
type SweepSessionsDeps struct {
	Sessions ExpiredSessionDeleter
	Now      func() time.Time
}

// ExecuteSweepSessions deletes every expired admin session.
// Expired sessions are already rejected on restore; this only reclaims rows.
// POST: no stored session has ExpiresAt before now
func ExecuteSweepSessions(ctx context.Context, deps SweepSessionsDeps) (int64, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	n, err := deps.Sessions.DeleteExpired(ctx, now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		slog.Info("admin_sessions_swept", "count", n)
	}
	return n, nil
}

// StartSessionSweeper runs ExecuteSweepSessions every interval until stopCh is closed.
func StartSessionSweeper(deps SweepSessionsDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if _, err := ExecuteSweepSessions(ctx, deps); err != nil {
					slog.Error("session_sweep_failed", "error", err)
				}
				cancel()
			case <-stopCh:
				slog.Info("session_sweeper_stopped")
				return
			}
		}
	}()
}
