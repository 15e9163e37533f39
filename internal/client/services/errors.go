package services

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Messages of these errors are shown to the user as is.
var (
	ErrDuplicateAccount   = errors.New("An account with this email already exists. Please login instead.")
	ErrRemoteWrite        = errors.New("Failed to create account. Please try again.")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrLockedOut          = errors.New("account locked")
)

// InvalidCredentialsError is a failed login. AttemptsRemaining is negative
// when the count is not reported; LockedFor is set on the failure that
// triggered the lockout.
type InvalidCredentialsError struct {
	AttemptsRemaining int
	LockedFor         time.Duration
}

func (e *InvalidCredentialsError) Error() string {
	switch {
	case e.LockedFor > 0:
		return fmt.Sprintf("Account locked for %d minutes due to multiple failed attempts.", ceilMinutes(e.LockedFor))
	case e.AttemptsRemaining < 0:
		return ErrInvalidCredentials.Error()
	default:
		return fmt.Sprintf("Invalid credentials. %d attempt(s) remaining.", e.AttemptsRemaining)
	}
}

func (e *InvalidCredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// LockedOutError rejects a login attempted while the lockout is active.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("Account locked. Try again in %d minute(s).", ceilMinutes(e.Remaining))
}

func (e *LockedOutError) Is(target error) bool { return target == ErrLockedOut }

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
