package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bebestgroup/portal/internal/domain"
)

// memoryRepo is an in-memory session store for auth tests.
type memoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string]*domain.Session)}
}

func (m *memoryRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	m.sessions[session.Token] = &s
	return nil
}

func (m *memoryRepo) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (m *memoryRepo) TouchSession(ctx context.Context, token string, lastSeen time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.LastSeenAt = lastSeen
	}
	return nil
}

func (m *memoryRepo) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *memoryRepo) DeleteExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	return 0, nil
}

func (m *memoryRepo) SaveChecklist(ctx context.Context, saved *domain.SavedChecklist) error {
	return nil
}

func (m *memoryRepo) ListChecklists(ctx context.Context, userID string) ([]*domain.SavedChecklist, error) {
	return nil, nil
}

func (m *memoryRepo) CountChecklists(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *memoryRepo) Ping(ctx context.Context) error { return nil }
func (m *memoryRepo) Close() error                   { return nil }

func TestLoginAcceptsAnyNonEmptyCredentials(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)

	user, token, err := svc.Login(context.Background(), "jane@example.com", "whatever")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "jane" {
		t.Errorf("Expected name derived from email local part, got %q", user.Name)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Unexpected email: %q", user.Email)
	}
	if user.Company != "Demo Corp" {
		t.Errorf("Unexpected company: %q", user.Company)
	}
	if len(token) != 64 {
		t.Errorf("Expected 64-char hex token, got %d chars", len(token))
	}
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)

	cases := []struct{ email, password string }{
		{"", ""},
		{"", "pw"},
		{"jane@example.com", ""},
		{"   ", "pw"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)

	cases := []struct{ name, email, password string }{
		{"", "jane@example.com", "pw"},
		{"Jane", "", "pw"},
		{"Jane", "jane@example.com", ""},
	}
	for _, tc := range cases {
		if _, _, err := svc.Signup(context.Background(), tc.name, tc.email, tc.password); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Signup(%q, %q, %q): expected ErrMissingFields, got %v", tc.name, tc.email, tc.password, err)
		}
	}
}

func TestSignupSynthesizesUser(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)

	user, token, err := svc.Signup(context.Background(), "  Jane Doe  ", "jane@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Name != "Jane Doe" {
		t.Errorf("Expected trimmed name, got %q", user.Name)
	}
	if user.Company != "New Client Ltd" {
		t.Errorf("Unexpected company: %q", user.Company)
	}
	if token == "" {
		t.Error("Expected a session token")
	}
}

func TestCurrentUserRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 0)

	user, token, err := svc.Login(context.Background(), "jane@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("Expected user %q, got %+v", user.ID, got)
	}

	if got, err := svc.CurrentUser(context.Background(), "unknown-token"); err != nil || got != nil {
		t.Errorf("Expected (nil, nil) for unknown token, got (%v, %v)", got, err)
	}
	if got, err := svc.CurrentUser(context.Background(), ""); err != nil || got != nil {
		t.Errorf("Expected (nil, nil) for empty token, got (%v, %v)", got, err)
	}
}

func TestLogoutRemovesSession(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 0)

	_, token, err := svc.Login(context.Background(), "jane@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if got, _ := svc.CurrentUser(context.Background(), token); got != nil {
		t.Error("Expected session to be gone after logout")
	}

	// Logging out twice or with no token is fine.
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Errorf("Repeat logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("Empty-token logout failed: %v", err)
	}
}

func TestLoginLatencyHonorsContext(t *testing.T) {
	svc := NewService(newMemoryRepo(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := svc.Login(ctx, "jane@example.com", "pw"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
