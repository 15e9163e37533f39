// Package validation checks registration input before it reaches the
// auth service. Rules are go-playground/validator tags plus a few custom
// validators for password strength and phone numbers.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// Error describes the first failing rule. Message is meant for the user.
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == ErrValidation }

// RegisterInput is the profile part of a sign-up form.
type RegisterInput struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// registration is validated in field order; the first failing field wins.
type registration struct {
	Email       string `validate:"required,email"`
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	Password    string `validate:"required,min=8,has_upper,has_lower,has_digit,has_special"`
	PhoneNumber string `validate:"omitempty,phone10"`
}

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("has_upper", containsRune(func(r rune) bool { return r >= 'A' && r <= 'Z' }))
	must("has_lower", containsRune(func(r rune) bool { return r >= 'a' && r <= 'z' }))
	must("has_digit", containsRune(func(r rune) bool { return r >= '0' && r <= '9' }))
	must("has_special", func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), specialChars)
	})
	must("phone10", func(fl validator.FieldLevel) bool {
		return PhoneDigits(fl.Field().String()) == 10
	})
	return v
}

func containsRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

// PhoneDigits counts the decimal digits in phone, ignoring separators.
func PhoneDigits(phone string) int {
	n := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

var messages = map[string]string{
	"required":    "Please fill in all required fields",
	"email":       "Please enter a valid email address (e.g., example@domain.com)",
	"min":         "Password must be at least 8 characters",
	"has_upper":   "Password must contain at least 1 uppercase letter",
	"has_lower":   "Password must contain at least 1 lowercase letter",
	"has_digit":   "Password must contain at least 1 number",
	"has_special": "Password must contain at least 1 special character",
	"phone10":     "Phone number must be exactly 10 digits",
}

// ValidateRegistration returns nil or a *Error for the first violated rule.
// Missing required fields are reported before any format problem.
func ValidateRegistration(in RegisterInput, password string) error {
	err := validate.Struct(registration{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Password:    password,
		PhoneNumber: in.PhoneNumber,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			first = fe
			break
		}
	}
	return &Error{Field: first.Field(), Rule: first.Tag(), Message: messages[first.Tag()]}
}
