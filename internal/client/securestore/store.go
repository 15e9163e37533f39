// Package securestore is the encrypted-at-rest key/value storage the auth
// guard keeps its credential, session and lockout records in.
//
// Values are strings (JSON documents in practice). Each value is sealed with
// AES-256-GCM before it reaches SQLite; the storage key name is bound as
// additional data, so a ciphertext copied to a different slot fails to open.
// The AES key is derived with argon2id from a per-device secret and a random
// salt kept in the same database.
package securestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophguard/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/cryptox"
	"github.com/dmitrijs2005/gophguard/internal/dbx"
)

const saltKey = "__kdf_salt"

// ItemStore is the storage contract the auth components depend on.
// GetItem reports absence with ok == false and a nil error.
type ItemStore interface {
	SetItem(ctx context.Context, key, value string) error
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	DeleteItem(ctx context.Context, key string) error
}

// Store implements ItemStore on top of a kv.Repository.
type Store struct {
	repo kv.Repository
	key  []byte
}

// New wraps repo with an already derived AES-256 key.
func New(repo kv.Repository, key []byte) *Store {
	return &Store{repo: repo, key: key}
}

// Open derives the storage key from secret and the database's salt, creating
// the salt on first use, and returns a Store over db.
func Open(ctx context.Context, db *sql.DB, secret []byte) (*Store, error) {
	var salt []byte

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		existing, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}
		if existing != nil {
			salt = existing
			return nil
		}

		salt = common.GenerateRandByteArray(16)
		return repo.Set(ctx, saltKey, salt)
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Key: saltKey, Err: err}
	}

	return New(kv.NewSQLiteRepository(db), cryptox.DeriveKey(secret, salt)), nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	sealed, err := cryptox.Seal(s.key, []byte(value), []byte(key))
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: fmt.Errorf("seal: %w", err)}
	}
	if err := s.repo.Set(ctx, key, sealed); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	if sealed == nil {
		return "", false, nil
	}

	plain, err := cryptox.Open(s.key, sealed, []byte(key))
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: fmt.Errorf("open: %w", err)}
	}
	return string(plain), true, nil
}

func (s *Store) DeleteItem(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
