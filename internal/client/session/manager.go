// Package session issues, persists and expires the local login session.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/client/profiles"
	"github.com/dmitrijs2005/gophguard/internal/client/securestore"
	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/logging"
)

const (
	storageKey = "user_session"

	DefaultTTL = 30 * 24 * time.Hour
)

// Session is the persisted login. ExpiresAt is in Unix milliseconds.
type Session struct {
	User         profiles.UserProfile `json:"user"`
	SessionToken string               `json:"sessionToken"`
	ExpiresAt    int64                `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

func (s Session) ExpiresTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

type Manager struct {
	items  securestore.ItemStore
	logger logging.Logger
	now    func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(items securestore.ItemStore, l logging.Logger, opts ...Option) *Manager {
	m := &Manager{items: items, logger: l.With("module", "session"), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// NewToken returns session_<unix-ms>_<16 hex chars>.
func NewToken(now time.Time) (string, error) {
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix), nil
}

// Create builds a session for user valid for ttl (DefaultTTL if ttl <= 0).
// It does not persist it.
func (m *Manager) Create(user profiles.UserProfile, ttl time.Duration) (Session, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := m.now()
	token, err := NewToken(now)
	if err != nil {
		return Session{}, err
	}
	return Session{
		User:         user,
		SessionToken: token,
		ExpiresAt:    now.Add(ttl).UnixMilli(),
	}, nil
}

func (m *Manager) Persist(ctx context.Context, s Session) error {
	return securestore.PutJSON(ctx, m.items, storageKey, s)
}

// LoadValid returns the stored session if it has not expired. An expired
// session is deleted. Storage failures are logged and treated as no session.
func (m *Manager) LoadValid(ctx context.Context) *Session {
	var s Session
	ok, err := securestore.GetJSON(ctx, m.items, storageKey, &s)
	if err != nil {
		m.logger.Warn(ctx, "session read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	if s.Expired(m.now()) {
		m.logger.Info(ctx, "session expired", "expires_at", s.ExpiresTime())
		m.Clear(ctx)
		return nil
	}
	return &s
}

func (m *Manager) Clear(ctx context.Context) {
	if err := m.items.DeleteItem(ctx, storageKey); err != nil {
		m.logger.Warn(ctx, "session delete failed", "error", err)
	}
}
