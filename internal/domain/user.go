// Package domain contains core domain types for the Bebest Group portal.
package domain

import "time"

// User represents an authenticated portal client.
// Accounts are synthesized at login/signup time; there is no credential
// verification behind them.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

// Session is a persisted portal session binding a token to a user.
type Session struct {
	Token      string    `json:"token"`
	User       User      `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Expired reports whether the session has been idle longer than ttl.
func (s *Session) Expired(ttl time.Duration) bool {
	return time.Since(s.LastSeenAt) > ttl
}
