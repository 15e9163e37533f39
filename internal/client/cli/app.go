package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/client/authstate"
	"github.com/dmitrijs2005/gophguard/internal/client/profiles"
	"github.com/dmitrijs2005/gophguard/internal/client/validation"
)

// Authenticator is the part of services.AuthService the CLI drives.
type Authenticator interface {
	Register(ctx context.Context, in validation.RegisterInput, password string) (*profiles.UserProfile, error)
	Login(ctx context.Context, email, password string) (bool, error)
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
	RestoreSession(ctx context.Context) bool
	WatchLockout(ctx context.Context, interval time.Duration)
	State() authstate.State
	AttemptsRemaining() int
	LockoutTimeRemaining() time.Duration
	Ping(ctx context.Context) error
}

type App struct {
	auth          Authenticator
	reader        *bufio.Reader
	out           io.Writer
	checkInterval time.Duration
}

func NewApp(auth Authenticator, in io.Reader, out io.Writer, lockoutCheckInterval time.Duration) *App {
	return &App{auth: auth, reader: bufio.NewReader(in), out: out, checkInterval: lockoutCheckInterval}
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.auth.State()
	switch {
	case st.IsLockedOut:
		return fmt.Sprintf("(locked %dm)", minutesCeil(a.auth.LockoutTimeRemaining()))
	case st.IsAuthenticated && st.User != nil:
		return fmt.Sprintf("(%s)", st.User.Email)
	default:
		return ""
	}
}

// Run restores a saved session, starts the lockout watcher and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to gophguard (type 'help' for commands)")

	if a.auth.RestoreSession(ctx) {
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(a.auth.State().User))
	}

	if err := a.auth.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, "Profile store unreachable; login still works offline.")
	}

	go a.auth.WatchLockout(ctx, a.checkInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func displayName(u *profiles.UserProfile) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

func minutesCeil(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
