package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/client/securestore"
)

// Store persists the lockout Status. Load reports ok == false when nothing
// has been saved. Saving the zero Status may delete the record.
type Store interface {
	Load(ctx context.Context) (Status, bool, error)
	Save(ctx context.Context, s Status) error
}

const secureStoreKey = "auth_lockout"

// record is the persisted form; LockoutUntil is Unix milliseconds, 0 for none.
type record struct {
	FailedAttempts int   `json:"failedAttempts"`
	LockoutUntil   int64 `json:"lockoutUntil"`
}

func toRecord(s Status) record {
	r := record{FailedAttempts: s.FailedAttempts}
	if !s.LockedUntil.IsZero() {
		r.LockoutUntil = s.LockedUntil.UnixMilli()
	}
	return r
}

func (r record) status() Status {
	s := Status{FailedAttempts: r.FailedAttempts}
	if r.LockoutUntil > 0 {
		s.LockedUntil = time.UnixMilli(r.LockoutUntil)
	}
	return s
}

// SecureStore keeps the status in the encrypted local store.
type SecureStore struct {
	items securestore.ItemStore
}

func NewSecureStore(items securestore.ItemStore) *SecureStore {
	return &SecureStore{items: items}
}

func (s *SecureStore) Load(ctx context.Context) (Status, bool, error) {
	var r record
	ok, err := securestore.GetJSON(ctx, s.items, secureStoreKey, &r)
	if err != nil || !ok {
		return Status{}, false, err
	}
	return r.status(), true, nil
}

func (s *SecureStore) Save(ctx context.Context, st Status) error {
	if st == (Status{}) {
		return s.items.DeleteItem(ctx, secureStoreKey)
	}
	return securestore.PutJSON(ctx, s.items, secureStoreKey, toRecord(st))
}

// MemoryStore keeps the status for the life of the process only.
type MemoryStore struct {
	mu sync.Mutex
	s  *Status
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (Status, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return Status{}, false, nil
	}
	return *m.s, true, nil
}

func (m *MemoryStore) Save(_ context.Context, s Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}
