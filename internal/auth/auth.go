// Package auth implements the mocked portal authentication service.
//
// Any non-empty credentials are accepted and a user record is synthesized on
// the spot. There is no password hashing and no uniqueness check; the only
// real state is the persisted session binding a token to the synthesized
// user. The success paths simulate the latency of a remote backend.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bebestgroup/portal/internal/domain"
	"github.com/bebestgroup/portal/internal/store"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login fields are empty.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when signup fields are empty.
	ErrMissingFields = errors.New("please fill in all fields")
)

// Service issues and resolves portal sessions.
type Service struct {
	repo    store.Repository
	latency time.Duration
}

// NewService creates an auth service. latency is applied to successful
// login/signup calls to simulate a remote backend; pass 0 to disable.
func NewService(repo store.Repository, latency time.Duration) *Service {
	return &Service{repo: repo, latency: latency}
}

// Login accepts any non-empty email/password pair and opens a session for a
// synthesized user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:      "user-" + uuid.NewString(),
		Name:    nameFromEmail(email),
		Email:   email,
		Company: "Demo Corp",
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Signup accepts any non-empty name/email/password triple and opens a
// session for a synthesized user.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:      "user-" + uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Email:   email,
		Company: "New Client Ltd",
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout closes the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// CurrentUser resolves a session token to its user. Returns (nil, nil) when
// the token is empty or unknown.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if err := s.repo.TouchSession(ctx, token, time.Now()); err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

func (s *Service) openSession(ctx context.Context, user *domain.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	err = s.repo.CreateSession(ctx, &domain.Session{
		Token:      token,
		User:       *user,
		CreatedAt:  now,
		LastSeenAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// nameFromEmail derives a display name from the email local part.
func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
