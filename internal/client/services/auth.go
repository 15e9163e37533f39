// Package services contains the application services of the gophguard client.
// This file defines the authentication orchestrator: registration, login with
// lockout, logout, account deletion and session restore.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/client/authstate"
	"github.com/dmitrijs2005/gophguard/internal/client/credentials"
	"github.com/dmitrijs2005/gophguard/internal/client/hasher"
	"github.com/dmitrijs2005/gophguard/internal/client/lockout"
	"github.com/dmitrijs2005/gophguard/internal/client/profiles"
	"github.com/dmitrijs2005/gophguard/internal/client/session"
	"github.com/dmitrijs2005/gophguard/internal/client/validation"
	"github.com/dmitrijs2005/gophguard/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultRemoteTimeout      = 10 * time.Second
	DefaultLockoutCheckPeriod = time.Minute
)

// AuthService coordinates the local credential record, the session, the
// lockout policy and the remote profile store. Mutating operations are
// serialized: the device has a single credential and session slot.
type AuthService struct {
	sem *semaphore.Weighted

	creds    *credentials.Store
	sessions *session.Manager
	lock     *lockout.Policy
	hasher   hasher.Hasher
	remote   profiles.Repository
	state    *authstate.Container
	logger   logging.Logger

	remoteTimeout time.Duration
	sessionTTL    time.Duration
	now           func() time.Time
	newID         func() string
}

type Option func(*AuthService)

func WithRemoteTimeout(d time.Duration) Option {
	return func(s *AuthService) {
		if d > 0 {
			s.remoteTimeout = d
		}
	}
}

func WithSessionTTL(d time.Duration) Option {
	return func(s *AuthService) { s.sessionTTL = d }
}

// WithClock sets the clock used for state projection. The lockout policy
// and session manager carry their own.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *AuthService) { s.newID = fn }
}

func NewAuthService(
	creds *credentials.Store,
	sessions *session.Manager,
	lock *lockout.Policy,
	h hasher.Hasher,
	remote profiles.Repository,
	l logging.Logger,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		sem:           semaphore.NewWeighted(1),
		creds:         creds,
		sessions:      sessions,
		lock:          lock,
		hasher:        h,
		remote:        remote,
		state:         authstate.NewContainer(),
		logger:        l.With("module", "auth_service"),
		remoteTimeout: DefaultRemoteTimeout,
		sessionTTL:    session.DefaultTTL,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *AuthService) acquire(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("auth operation: %w", err)
	}
	return nil
}

func (s *AuthService) release() { s.sem.Release(1) }

func (s *AuthService) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.remoteTimeout)
}

func (s *AuthService) publishLockout() {
	s.state.SetLockout(s.lock.Status(), s.now())
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*profiles.UserProfile, error) {
	ctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	return s.remote.FindByEmail(ctx, email)
}

// Register creates the remote profile and the local credential record, then
// signs the new user in. The returned profile carries the assigned user id.
func (s *AuthService) Register(ctx context.Context, in validation.RegisterInput, password string) (*profiles.UserProfile, error) {
	if err := validation.ValidateRegistration(in, password); err != nil {
		return nil, err
	}

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	s.state.SetLoading(true)
	done := false
	defer func() {
		if !done {
			s.state.SetLoading(false)
		}
	}()

	s.creds.Delete(ctx)
	s.sessions.Clear(ctx)

	existing, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		s.logger.Warn(ctx, "profile lookup failed, relying on insert uniqueness", "error", err)
	} else if existing != nil {
		return nil, ErrDuplicateAccount
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := profiles.UserProfile{
		ID:          s.newID(),
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
	}

	if err := s.insertProfile(ctx, &user); err != nil {
		return nil, err
	}

	if err := s.creds.Save(ctx, credentials.Record{Email: user.Email, PasswordHash: digest}); err != nil {
		s.logger.Error(ctx, "credential save failed, removing remote profile", "user_id", user.ID, "error", err)
		s.deleteRemoteProfile(ctx, user.ID)
		return nil, err
	}

	sess, err := s.sessions.Create(user, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Persist(ctx, sess); err != nil {
		return nil, err
	}

	s.lock.Reset(ctx)
	s.state.LoginSuccess(user, sess.SessionToken)
	done = true

	s.logger.Info(ctx, "account registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) insertProfile(ctx context.Context, user *profiles.UserProfile) error {
	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()

	stored, err := s.remote.Insert(rctx, user)
	if err != nil {
		if profiles.IsUniqueViolation(err) {
			return ErrDuplicateAccount
		}
		s.logger.Error(ctx, "profile insert failed", "error", err)
		return ErrRemoteWrite
	}
	if stored != nil && stored.ID == user.ID {
		*user = *stored
	}
	return nil
}

func (s *AuthService) deleteRemoteProfile(ctx context.Context, userID string) {
	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()

	if err := s.remote.DeleteProfile(rctx, userID); err != nil {
		s.logger.Warn(ctx, "profile delete failed", "user_id", userID, "error", err)
	}
}

// Login verifies email and password against the local credential record.
// It returns a *LockedOutError while the lockout is active and an
// *InvalidCredentialsError for any mismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (bool, error) {
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()

	locked, remaining := s.lock.Check(ctx)
	s.publishLockout()
	if locked {
		return false, &LockedOutError{Remaining: remaining}
	}

	s.state.SetLoading(true)
	done := false
	defer func() {
		if !done {
			s.state.SetLoading(false)
		}
	}()

	rec := s.creds.Load(ctx)
	if rec == nil {
		s.lock.RecordFailure(ctx)
		s.publishLockout()
		return false, &InvalidCredentialsError{AttemptsRemaining: -1}
	}

	if rec.Email != email || !s.verify(ctx, password, rec.PasswordHash) {
		st := s.lock.RecordFailure(ctx)
		s.publishLockout()
		if !st.LockedUntil.IsZero() {
			return false, &InvalidCredentialsError{LockedFor: s.lock.Duration()}
		}
		return false, &InvalidCredentialsError{AttemptsRemaining: max(0, s.lock.MaxAttempts()-st.FailedAttempts)}
	}

	var previous *profiles.UserProfile
	if prev := s.sessions.LoadValid(ctx); prev != nil && prev.User.Email == email {
		previous = &prev.User
	}
	s.sessions.Clear(ctx)

	user := s.resolveProfile(ctx, email, previous)

	sess, err := s.sessions.Create(user, s.sessionTTL)
	if err != nil {
		return false, err
	}
	if err := s.sessions.Persist(ctx, sess); err != nil {
		return false, err
	}

	s.lock.Reset(ctx)
	s.state.LoginSuccess(user, sess.SessionToken)
	done = true

	s.logger.Info(ctx, "login succeeded", "user_id", user.ID)
	return true, nil
}

func (s *AuthService) verify(ctx context.Context, password, digest string) bool {
	ok, err := s.hasher.Verify(password, digest)
	if err != nil {
		s.logger.Warn(ctx, "stored password digest unreadable", "error", err)
		return false
	}
	return ok
}

// resolveProfile prefers the remote profile, then the user of the previous
// session for the same email, then a fresh minimal profile.
func (s *AuthService) resolveProfile(ctx context.Context, email string, previous *profiles.UserProfile) profiles.UserProfile {
	p, err := s.findByEmail(ctx, email)
	if err != nil {
		s.logger.Warn(ctx, "profile refresh failed", "error", err)
	}
	if p != nil {
		return *p
	}
	if previous != nil {
		return *previous
	}
	return profiles.UserProfile{ID: s.newID(), Email: email}
}

// Logout drops the session. It never fails.
func (s *AuthService) Logout(ctx context.Context) {
	_ = s.sem.Acquire(context.WithoutCancel(ctx), 1)
	defer s.release()

	s.sessions.Clear(ctx)
	s.state.Logout()
}

// DeleteAccount removes the user's remote data and profile, then the local
// credential record and session. Remote failures are logged; local cleanup
// always happens.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	if sess := s.sessions.LoadValid(ctx); sess != nil {
		s.deleteRemoteAccount(ctx, sess.User.ID)
	}

	s.creds.Delete(ctx)
	s.sessions.Clear(ctx)
	s.state.Logout()
	return nil
}

func (s *AuthService) deleteRemoteAccount(ctx context.Context, userID string) {
	rctx, cancel := s.remoteCtx(ctx)
	defer cancel()

	if err := s.remote.DeleteUserData(rctx, userID); err != nil {
		s.logger.Warn(ctx, "user data delete failed", "user_id", userID, "error", err)
		return
	}
	if err := s.remote.DeleteProfile(rctx, userID); err != nil {
		s.logger.Warn(ctx, "profile delete failed", "user_id", userID, "error", err)
	}
}

// RestoreSession reloads the persisted lockout status and, if a valid
// session is stored, publishes it as authenticated. No password is checked.
func (s *AuthService) RestoreSession(ctx context.Context) bool {
	if err := s.acquire(ctx); err != nil {
		return false
	}
	defer s.release()

	s.state.SetLockout(s.lock.Restore(ctx), s.now())

	sess := s.sessions.LoadValid(ctx)
	if sess == nil {
		return false
	}
	s.state.Restore(sess.User, sess.SessionToken)
	return true
}

// WatchLockout clears an elapsed lockout immediately and then every interval
// until ctx is done.
func (s *AuthService) WatchLockout(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultLockoutCheckPeriod
	}

	check := func() {
		if s.lock.Expire(ctx) {
			s.publishLockout()
		}
	}
	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (s *AuthService) State() authstate.State { return s.state.Snapshot() }

func (s *AuthService) Subscribe() (<-chan authstate.State, func()) { return s.state.Subscribe() }

func (s *AuthService) AttemptsRemaining() int {
	return authstate.AttemptsRemaining(s.state.Snapshot(), s.lock.MaxAttempts())
}

func (s *AuthService) LockoutTimeRemaining() time.Duration {
	return authstate.LockoutTimeRemaining(s.state.Snapshot(), s.now())
}

// Ping checks that the profile store is reachable.
func (s *AuthService) Ping(ctx context.Context) error {
	ctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	return s.remote.Ping(ctx)
}

func (s *AuthService) Close() error {
	return s.remote.Close()
}
