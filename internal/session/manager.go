// Package session owns the bearer token and the identity decoded from it.
package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// Manager derives the current Session from the token in its Store.
// Expiry is evaluated on every read; nothing runs in the background.
type Manager struct {
	store Store
	now   func() time.Time
	log   *zap.Logger

	mu sync.Mutex

	// decoded is the session for cachedRaw; reused while the stored token is unchanged.
	cachedRaw string
	decoded   domain.Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a Manager over store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Establish decodes token, persists it and makes it the active session.
// A token that decodes but has already expired is still stored; it reads
// as unauthenticated.
func (m *Manager) Establish(token string) (domain.Session, error) {
	s, err := Decode(token)
	if err != nil {
		m.log.Warn("rejected token", zap.Error(err))
		return domain.Session{}, fmt.Errorf("session.Establish: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(token); err != nil {
		return domain.Session{}, fmt.Errorf("session.Establish: %w", err)
	}
	m.cachedRaw, m.decoded = token, s
	m.log.Info("session established",
		zap.String("subject", s.SubjectID), zap.String("role", string(s.Role)), zap.Time("expires_at", s.ExpiresAt))
	return s, nil
}

// Restore loads the stored token at start-up. An undecodable or expired
// token is cleared; any failure leaves the user logged out.
func (m *Manager) Restore() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.store.Load()
	if err != nil {
		m.log.Warn("restore session", zap.Error(err))
		return domain.Session{}, false
	}
	if raw == "" {
		return domain.Session{}, false
	}
	s, err := m.decode(raw)
	if err == nil && s.ValidAt(m.now()) {
		m.log.Info("session restored", zap.String("subject", s.SubjectID), zap.String("role", string(s.Role)))
		return s, true
	}

	if err != nil {
		m.log.Warn("discarding stored token", zap.Error(err))
	} else {
		m.log.Info("stored session expired", zap.Time("expires_at", s.ExpiresAt))
	}
	if err := m.clearLocked(); err != nil {
		m.log.Warn("clear stored token", zap.Error(err))
	}
	return domain.Session{}, false
}

// Current returns the active session if it has not expired. It never
// writes to the store.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.store.Load()
	if err != nil || raw == "" {
		return domain.Session{}, false
	}
	s, err := m.decode(raw)
	if err != nil || !s.ValidAt(m.now()) {
		return domain.Session{}, false
	}
	return s, true
}

// IsAuthenticated reports whether a valid session exists.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// Role returns the role of the valid session.
func (m *Manager) Role() (domain.Role, bool) {
	s, ok := m.Current()
	if !ok {
		return "", false
	}
	return s.Role, true
}

// Token returns the raw token of the valid session, or "".
func (m *Manager) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}
	return s.Token
}

// Terminate clears the stored token and the active session. Calling it
// with no session is a no-op.
func (m *Manager) Terminate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.clearLocked(); err != nil {
		return fmt.Errorf("session.Terminate: %w", err)
	}
	m.log.Info("session terminated")
	return nil
}

func (m *Manager) clearLocked() error {
	m.cachedRaw, m.decoded = "", domain.Session{}
	return m.store.Clear()
}

// decode returns the cached session when raw is the token decoded last.
func (m *Manager) decode(raw string) (domain.Session, error) {
	if raw == m.cachedRaw {
		return m.decoded, nil
	}
	s, err := Decode(raw)
	if err != nil {
		return domain.Session{}, err
	}
	m.cachedRaw, m.decoded = raw, s
	return s, nil
}
