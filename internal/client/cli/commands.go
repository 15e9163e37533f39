package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophguard/internal/client/validation"
	"github.com/dmitrijs2005/gophguard/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
)

// Register prompts for the profile fields and a password and creates the
// account. Errors are printed verbatim and returned.
func (a *App) Register(ctx context.Context) error {
	var in validation.RegisterInput
	var err error

	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if in.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if in.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}
	if in.PhoneNumber, err = getOptionalText(a.reader, "Enter phone number", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, in, string(password))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", displayName(user))
	return nil
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(a.auth.State().User))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// DeleteAccount asks for confirmation, then removes the account.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type 'yes' to delete your account", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

// Status prints the authentication and lockout state.
func (a *App) Status(ctx context.Context) error {
	st := a.auth.State()

	if st.IsAuthenticated && st.User != nil {
		fmt.Fprintf(a.out, "Logged in as %s (user id %s)\n", st.User.Email, st.User.ID)
	} else {
		fmt.Fprintln(a.out, "Not logged in")
	}

	if st.IsLockedOut {
		fmt.Fprintf(a.out, "Login locked for %d more minute(s)\n", minutesCeil(a.auth.LockoutTimeRemaining()))
	} else {
		fmt.Fprintf(a.out, "Login attempts remaining: %d\n", a.auth.AttemptsRemaining())
	}
	return nil
}
