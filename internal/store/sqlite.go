package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bebestgroup/portal/internal/domain"
	"github.com/bebestgroup/portal/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	writeMaxRetries     = 3
	writeRetryBaseDelay = 50 * time.Millisecond
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT,
		created_at INTEGER NOT NULL,
		last_seen_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_last_seen ON sessions(last_seen_at);

	CREATE TABLE IF NOT EXISTS saved_checklists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		checklist_json TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_saved_checklists_user ON saved_checklists(user_id, saved_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// execWithRetry runs a write statement with exponential backoff on
// SQLITE_BUSY errors from concurrent connections.
func (s *SQLiteStore) execWithRetry(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result
	var err error
	for i := 0; i < writeMaxRetries; i++ {
		result, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			return result, nil
		}
		if !shared.IsSQLiteConflictError(err) || i == writeMaxRetries-1 {
			return nil, err
		}

		delay := writeRetryBaseDelay * time.Duration(1<<i)
		slog.Debug("Database locked, retrying write", "attempt", i+1, "delay", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, err
}

// CreateSession persists a new portal session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	query := `
	INSERT INTO sessions (token, user_id, name, email, company, created_at, last_seen_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	var company interface{}
	if session.User.Company != "" {
		company = session.User.Company
	}

	_, err := s.execWithRetry(ctx, query,
		session.Token, session.User.ID, session.User.Name, session.User.Email,
		company, session.CreatedAt.Unix(), session.LastSeenAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by token.
func (s *SQLiteStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT token, user_id, name, email, company, created_at, last_seen_at
		FROM sessions WHERE token = ?`

	row := s.db.QueryRowContext(ctx, query, token)

	var session domain.Session
	var company sql.NullString
	var createdAt, lastSeen int64

	err := row.Scan(
		&session.Token, &session.User.ID, &session.User.Name, &session.User.Email,
		&company, &createdAt, &lastSeen,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	session.User.Company = company.String
	session.CreatedAt = time.Unix(createdAt, 0)
	session.LastSeenAt = time.Unix(lastSeen, 0)

	return &session, nil
}

// TouchSession updates the last_seen_at timestamp for a session.
func (s *SQLiteStore) TouchSession(ctx context.Context, token string, lastSeen time.Time) error {
	query := `UPDATE sessions SET last_seen_at = ? WHERE token = ?`
	result, err := s.db.ExecContext(ctx, query, lastSeen.Unix(), token)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("TouchSession affected 0 rows", "token_prefix", tokenPrefix(token))
	}

	return nil
}

// DeleteSession removes a session.
func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions idle longer than ttl.
func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	threshold := time.Now().Add(-ttl).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_seen_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// SaveChecklist persists a checklist snapshot for a user.
func (s *SQLiteStore) SaveChecklist(ctx context.Context, saved *domain.SavedChecklist) error {
	payload, err := json.Marshal(saved.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}

	query := `
	INSERT INTO saved_checklists (id, user_id, checklist_json, saved_at)
	VALUES (?, ?, ?, ?)`

	_, err = s.execWithRetry(ctx, query, saved.ID, saved.UserID, string(payload), saved.SavedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert saved checklist: %w", err)
	}
	return nil
}

// ListChecklists returns a user's saved checklists, newest first.
func (s *SQLiteStore) ListChecklists(ctx context.Context, userID string) ([]*domain.SavedChecklist, error) {
	query := `
		SELECT id, user_id, checklist_json, saved_at
		FROM saved_checklists WHERE user_id = ? ORDER BY saved_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query saved checklists: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close saved checklist rows", "error", closeErr)
		}
	}()

	var out []*domain.SavedChecklist
	for rows.Next() {
		var saved domain.SavedChecklist
		var payload string
		var savedAt int64

		if err := rows.Scan(&saved.ID, &saved.UserID, &payload, &savedAt); err != nil {
			return nil, fmt.Errorf("scan saved checklist row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &saved.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist %s: %w", saved.ID, err)
		}
		saved.SavedAt = time.Unix(savedAt, 0)
		out = append(out, &saved)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved checklists: %w", err)
	}

	return out, nil
}

// CountChecklists returns how many checklists a user has saved.
func (s *SQLiteStore) CountChecklists(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_checklists WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count saved checklists: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
