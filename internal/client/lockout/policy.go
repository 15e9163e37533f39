// Package lockout implements the failed-login limiter: after MaxAttempts
// consecutive failures the device refuses login attempts for Duration.
//
// The policy is a two-state machine. Open counts failures; the failure that
// reaches MaxAttempts moves it to Locked with a deadline. Locked returns to
// Open, with the counter cleared, the first time the deadline is observed to
// have passed (on Check or Expire).
package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/logging"
)

const (
	DefaultMaxAttempts = 5
	DefaultDuration    = 5 * time.Minute
)

// Status is the limiter state. A zero LockedUntil means not locked.
type Status struct {
	FailedAttempts int
	LockedUntil    time.Time
}

// Locked reports whether the deadline is set and still ahead of now.
func (s Status) Locked(now time.Time) bool {
	return !s.LockedUntil.IsZero() && now.Before(s.LockedUntil)
}

// Remaining is the time left until unlock, or 0.
func (s Status) Remaining(now time.Time) time.Duration {
	if !s.Locked(now) {
		return 0
	}
	return s.LockedUntil.Sub(now)
}

type Config struct {
	MaxAttempts int
	Duration    time.Duration
}

// Policy is safe for concurrent use. Every operation first reloads the
// status from the Store and every state change is written through to it.
// While the last write failed the in-memory status stays authoritative.
type Policy struct {
	mu     sync.Mutex
	cfg    Config
	status Status
	store  Store
	dirty  bool
	logger logging.Logger
	now    func() time.Time
}

type Option func(*Policy)

func WithConfig(cfg Config) Option {
	return func(p *Policy) {
		if cfg.MaxAttempts > 0 {
			p.cfg.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.Duration > 0 {
			p.cfg.Duration = cfg.Duration
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

func NewPolicy(store Store, l logging.Logger, opts ...Option) *Policy {
	p := &Policy{
		cfg:    Config{MaxAttempts: DefaultMaxAttempts, Duration: DefaultDuration},
		store:  store,
		logger: l.With("module", "lockout"),
		now:    time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Policy) MaxAttempts() int        { return p.cfg.MaxAttempts }
func (p *Policy) Duration() time.Duration { return p.cfg.Duration }

// Restore loads the persisted status, expiring it if its deadline passed
// while the process was not running.
func (p *Policy) Restore(ctx context.Context) Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	p.expireLocked(ctx)
	return p.status
}

// Status returns the current state without applying expiry.
func (p *Policy) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Check applies lazy expiry and reports whether logins are currently
// refused and for how long.
func (p *Policy) Check(ctx context.Context) (bool, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	p.expireLocked(ctx)
	now := p.now()
	return p.status.Locked(now), p.status.Remaining(now)
}

// Expire clears a lockout whose deadline has passed and reports whether it did.
func (p *Policy) Expire(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	return p.expireLocked(ctx)
}

// RecordFailure counts one failed attempt and returns the resulting status.
// The attempt that reaches MaxAttempts sets the lockout deadline.
// It does nothing while locked.
func (p *Policy) RecordFailure(ctx context.Context) Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	now := p.now()
	if p.status.Locked(now) {
		return p.status
	}

	p.status.FailedAttempts++
	if p.status.FailedAttempts >= p.cfg.MaxAttempts {
		p.status.LockedUntil = now.Add(p.cfg.Duration)
		p.logger.Warn(ctx, "login locked", "attempts", p.status.FailedAttempts, "until", p.status.LockedUntil)
	}
	p.persist(ctx)
	return p.status
}

// Reset clears the counter and any deadline.
func (p *Policy) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	if p.status == (Status{}) {
		return
	}
	p.status = Status{}
	p.persist(ctx)
}

func (p *Policy) expireLocked(ctx context.Context) bool {
	if p.status.LockedUntil.IsZero() || p.now().Before(p.status.LockedUntil) {
		return false
	}
	p.status = Status{}
	p.logger.Info(ctx, "login lockout expired")
	p.persist(ctx)
	return true
}

// loadLocked replaces the in-memory status with the stored one, so a
// restarted process or another process sharing the store sees the same
// counter. A missing record means the open state.
func (p *Policy) loadLocked(ctx context.Context) {
	if p.dirty {
		return
	}
	st, ok, err := p.store.Load(ctx)
	if err != nil {
		p.logger.Warn(ctx, "lockout state load failed", "error", err)
		return
	}
	if !ok {
		st = Status{}
	}
	if st.FailedAttempts == p.status.FailedAttempts && st.LockedUntil.Equal(p.status.LockedUntil) {
		return
	}
	p.status = st
}

func (p *Policy) persist(ctx context.Context) {
	if err := p.store.Save(ctx, p.status); err != nil {
		p.dirty = true
		p.logger.Error(ctx, "lockout state save failed", "error", err)
		return
	}
	p.dirty = false
}
