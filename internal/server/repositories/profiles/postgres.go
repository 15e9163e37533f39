package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/dbx"
	"github.com/dmitrijs2005/gophguard/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query :=
		`SELECT user_id, email, first_name, last_name, phone_number, created_at FROM profiles
		 WHERE email = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Insert stores p. A duplicate user id or email yields common.ErrorAlreadyExists
// wrapped together with the driver error, so its message is kept.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (user_id, email, first_name, last_name, phone_number)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Email, p.FirstName, p.LastName, p.PhoneNumber).Scan(&p.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.Message)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Delete removes every row of table owned by userID and reports how many
// were removed. Only TableProfiles and TableUserData are accepted.
func (r *PostgresRepository) Delete(ctx context.Context, table, userID string) (int64, error) {
	var query string
	switch table {
	case TableProfiles:
		query = `DELETE FROM profiles WHERE user_id = $1`
	case TableUserData:
		query = `DELETE FROM user_data WHERE user_id = $1`
	default:
		return 0, fmt.Errorf("%w: unknown table %q", common.ErrorIncorrectRequest, table)
	}

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
