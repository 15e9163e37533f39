package profiles

import "context"

// UserProfile is the public profile of an account. ID is assigned by the
// client at registration and never changes.
type UserProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Repository is the remote profile/data store.
//
// FindByEmail returns nil, nil when no profile matches. Insert reports a
// duplicate email as a *RemoteError with KindUniqueViolation. Deletes of
// missing rows are not errors.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)
	Insert(ctx context.Context, p *UserProfile) (*UserProfile, error)
	DeleteUserData(ctx context.Context, userID string) error
	DeleteProfile(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
	Close() error
}
