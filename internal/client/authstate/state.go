// Package authstate holds the observable authentication state of the client
// and lets UI code subscribe to it.
package authstate

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/client/lockout"
	"github.com/dmitrijs2005/gophguard/internal/client/profiles"
)

// State is an immutable snapshot. IsLockedOut is true exactly when
// LockoutUntil is set and still in the future at the time it was published.
type State struct {
	User            *profiles.UserProfile
	Session         string
	IsAuthenticated bool
	IsLoading       bool
	FailedAttempts  int
	IsLockedOut     bool
	LockoutUntil    time.Time
}

// Container owns the current State. Subscribers receive the latest value;
// intermediate values are dropped if a subscriber falls behind.
type Container struct {
	mu    sync.Mutex
	state State
	subs  map[int]chan State
	next  int
}

func NewContainer() *Container {
	return &Container{subs: make(map[int]chan State)}
}

func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel that immediately holds the current state and
// then each later one, plus a cancel func that closes the channel.
func (c *Container) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan State, 1)
	ch <- c.state
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

func (c *Container) update(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.state)
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c.state
	}
}

func (c *Container) SetLoading(loading bool) {
	c.update(func(s *State) { s.IsLoading = loading })
}

// LoginSuccess publishes an authenticated user and clears any lockout.
func (c *Container) LoginSuccess(user profiles.UserProfile, token string) {
	c.update(func(s *State) {
		s.User = &user
		s.Session = token
		s.IsAuthenticated = true
		s.IsLoading = false
		s.FailedAttempts = 0
		s.IsLockedOut = false
		s.LockoutUntil = time.Time{}
	})
}

// Restore publishes a session recovered from storage.
func (c *Container) Restore(user profiles.UserProfile, token string) {
	c.update(func(s *State) {
		s.User = &user
		s.Session = token
		s.IsAuthenticated = true
	})
}

// Logout drops the user and session. Lockout fields are kept.
func (c *Container) Logout() {
	c.update(func(s *State) {
		s.User = nil
		s.Session = ""
		s.IsAuthenticated = false
		s.IsLoading = false
	})
}

// SetLockout mirrors the limiter status as observed at now.
func (c *Container) SetLockout(st lockout.Status, now time.Time) {
	c.update(func(s *State) {
		s.FailedAttempts = st.FailedAttempts
		s.IsLockedOut = st.Locked(now)
		if s.IsLockedOut {
			s.LockoutUntil = st.LockedUntil
		} else {
			s.LockoutUntil = time.Time{}
		}
	})
}

// AttemptsRemaining is max(0, maxAttempts - FailedAttempts).
func AttemptsRemaining(s State, maxAttempts int) int {
	return max(0, maxAttempts-s.FailedAttempts)
}

// LockoutTimeRemaining is the time until LockoutUntil, or 0 when not locked.
func LockoutTimeRemaining(s State, now time.Time) time.Duration {
	if !s.IsLockedOut || s.LockoutUntil.IsZero() {
		return 0
	}
	return max(0, s.LockoutUntil.Sub(now))
}
