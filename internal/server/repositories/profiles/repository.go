package profiles

import (
	"context"

	"github.com/dmitrijs2005/gophguard/internal/server/models"
)

// Tables rows can be deleted from by user id.
const (
	TableProfiles = "profiles"
	TableUserData = "user_data"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Insert(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, table, userID string) (int64, error)
	Ping(ctx context.Context) error
}
