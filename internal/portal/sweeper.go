package portal

import (
	"context"
	"log/slog"
	"time"

	"github.com/bebestgroup/portal/internal/store"
)

const sweepInterval = 5 * time.Minute

// StartSweeper runs a background goroutine that periodically evicts idle
// visitor controllers and deletes expired portal sessions from the store.
func StartSweeper(ctx context.Context, reg *Registry, repo store.Repository, ttl time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session sweeper started", "interval", sweepInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				sweepOnce(ctx, reg, repo, ttl)
			case <-ctx.Done():
				slog.Info("Session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweepOnce(ctx context.Context, reg *Registry, repo store.Repository, ttl time.Duration) {
	if evicted := reg.Sweep(ttl); evicted > 0 {
		slog.Info("Swept idle visitor controllers", "count", evicted)
	}

	deleted, err := repo.DeleteExpiredSessions(ctx, ttl)
	if err != nil {
		slog.Error("Failed to delete expired portal sessions", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Deleted expired portal sessions", "count", deleted)
	}
}
