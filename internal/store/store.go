// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/bebestgroup/portal/internal/domain"
)

// Repository defines the interface for persisting portal sessions and saved
// checklists.
type Repository interface {
	// CreateSession persists a new portal session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by token. Returns (nil, nil) when the
	// token is unknown.
	GetSession(ctx context.Context, token string) (*domain.Session, error)

	// TouchSession updates the last_seen_at timestamp for a session.
	TouchSession(ctx context.Context, token string, lastSeen time.Time) error

	// DeleteSession removes a session. Deleting an unknown token is not an
	// error.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes sessions idle longer than ttl and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error)

	// SaveChecklist persists a checklist snapshot for a user.
	SaveChecklist(ctx context.Context, saved *domain.SavedChecklist) error

	// ListChecklists returns a user's saved checklists, newest first.
	ListChecklists(ctx context.Context, userID string) ([]*domain.SavedChecklist, error)

	// CountChecklists returns how many checklists a user has saved.
	CountChecklists(ctx context.Context, userID string) (int64, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
