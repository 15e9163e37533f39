// Package credentials keeps the single credential record of this device:
// the account email and its password digest.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/gophguard/internal/client/securestore"
	"github.com/dmitrijs2005/gophguard/internal/logging"
)

const storageKey = "user_credentials"

type Record struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type Store struct {
	items  securestore.ItemStore
	logger logging.Logger
}

func NewStore(items securestore.ItemStore, l logging.Logger) *Store {
	return &Store{items: items, logger: l.With("module", "credentials")}
}

// Save overwrites the stored record. Failures are returned as
// *securestore.StorageError.
func (s *Store) Save(ctx context.Context, r Record) error {
	return securestore.PutJSON(ctx, s.items, storageKey, r)
}

// Load returns the stored record, or nil if there is none. Read and decode
// failures are logged and reported as absence.
func (s *Store) Load(ctx context.Context) *Record {
	var r Record
	ok, err := securestore.GetJSON(ctx, s.items, storageKey, &r)
	if err != nil {
		s.logger.Warn(ctx, "credential read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &r
}

// Delete removes the record. A missing record is not an error; storage
// failures are logged only.
func (s *Store) Delete(ctx context.Context) {
	if err := s.items.DeleteItem(ctx, storageKey); err != nil {
		s.logger.Warn(ctx, "credential delete failed", "error", err)
	}
}
