package profiles

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("profile store unavailable")
	ErrUnauthorized = errors.New("profile store rejected service token")
)

type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindUniqueViolation
)

func (k ErrorKind) String() string {
	if k == KindUniqueViolation {
		return "unique_violation"
	}
	return "other"
}

// RemoteError is returned by Repository implementations for any failed call.
type RemoteError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("profile store %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsUniqueViolation reports whether err is a RemoteError of KindUniqueViolation.
func IsUniqueViolation(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == KindUniqueViolation
}
