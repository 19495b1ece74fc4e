// Package session holds the console's auth token and role. It replaces the
// ambient browser storage lookups with an explicit object handed to every
// component that talks to the API.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// RoleAdmin is the role string the API issues to administrators.
const RoleAdmin = "admin"

// Session is a snapshot of the current login.
type Session struct {
	Token   string     `json:"-"`
	Role    string     `json:"role"`
	LoginID string     `json:"login_id,omitempty"`
	Subject string     `json:"subject,omitempty"`
	Expires *time.Time `json:"expires_at,omitempty"`
}

// Active reports whether a token is held.
func (s Session) Active() bool {
	return s.Token != ""
}

// Expired reports whether the token carries an exp claim in the past. The
// console never renews tokens; this is informational only.
func (s Session) Expired(now time.Time) bool {
	return s.Expires != nil && now.After(*s.Expires)
}

// Manager owns the session lifecycle. It is safe for concurrent use.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	current Session
	onReset []func()
}

// NewManager constructs a Manager over store.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// OnLogout registers a hook run after the session is cleared. Views use it to
// drop their local state.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReset = append(m.onReset, fn)
}

// Restore loads a previously persisted session.
func (m *Manager) Restore(ctx context.Context) (Session, error) {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return Session{}, fmt.Errorf("restore token: %w", err)
	}
	role, err := m.store.Get(ctx, KeyRole)
	if err != nil {
		return Session{}, fmt.Errorf("restore role: %w", err)
	}
	loginID, err := m.store.Get(ctx, KeyLoginID)
	if err != nil {
		return Session{}, fmt.Errorf("restore login id: %w", err)
	}

	s := build(token, role, loginID)
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	if s.Active() {
		m.logger.Info("session restored", zap.String("role", s.Role), zap.String("login_id", s.LoginID))
	}
	return s, nil
}

// Login persists a freshly issued token and role. A failed write removes the
// entries already written, so a restart never restores half a session.
func (m *Manager) Login(ctx context.Context, token, role, loginID string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("empty token")
	}
	entries := []struct{ key, value string }{
		{KeyToken, token},
		{KeyRole, role},
		{KeyLoginID, loginID},
	}
	written := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := m.store.Set(ctx, e.key, e.value); err != nil {
			if len(written) > 0 {
				if derr := m.store.Delete(ctx, written...); derr != nil {
					m.logger.Warn("session rollback failed", zap.Strings("keys", written), zap.Error(derr))
				}
			}
			return Session{}, fmt.Errorf("persist %s: %w", e.key, err)
		}
		written = append(written, e.key)
	}

	s := build(token, role, loginID)
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Logout clears the persisted entries and resets dependent views. The
// in-memory session is dropped even when the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = Session{}
	hooks := append([]func(){}, m.onReset...)
	m.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	if err := m.store.Delete(ctx, KeyToken, KeyRole, KeyLoginID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the active session snapshot.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token implements apiclient.TokenSource.
func (m *Manager) Token() string {
	return m.Current().Token
}

// Role returns the current role or empty.
func (m *Manager) Role() string {
	return m.Current().Role
}

func build(token, role, loginID string) Session {
	s := Session{Token: token, Role: role, LoginID: loginID}
	if token == "" {
		return s
	}
	claims := jwt.MapClaims{}
	// Signature verification belongs to the API; the console only reads claims.
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		s.Expires = &t
	}
	if sub, err := claims.GetSubject(); err == nil {
		s.Subject = sub
	}
	return s
}
