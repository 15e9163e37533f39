package lockout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newPolicy(store Store) (*Policy, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewPolicy(store, logging.Discard(), WithClock(c.now)), c
}

func TestPolicy_LocksOnFifthFailure(t *testing.T) {
	p, c := newPolicy(NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		st := p.RecordFailure(ctx)
		assert.Equal(t, i, st.FailedAttempts)
		assert.False(t, st.Locked(c.t))
	}

	st := p.RecordFailure(ctx)
	assert.Equal(t, 5, st.FailedAttempts)
	assert.Equal(t, c.t.Add(5*time.Minute), st.LockedUntil)

	locked, remaining := p.Check(ctx)
	assert.True(t, locked)
	assert.Equal(t, 5*time.Minute, remaining)
}

func TestPolicy_FailuresWhileLockedAreIgnored(t *testing.T) {
	p, c := newPolicy(NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}
	before := p.Status()

	c.t = c.t.Add(time.Minute)
	after := p.RecordFailure(ctx)
	assert.Equal(t, before, after)
}

func TestPolicy_ExpiresLazilyOnCheck(t *testing.T) {
	p, c := newPolicy(NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}

	c.t = c.t.Add(5*time.Minute - time.Second)
	locked, remaining := p.Check(ctx)
	assert.True(t, locked)
	assert.Equal(t, time.Second, remaining)

	c.t = c.t.Add(time.Second)
	locked, remaining = p.Check(ctx)
	assert.False(t, locked)
	assert.Zero(t, remaining)
	assert.Equal(t, Status{}, p.Status())
}

func TestPolicy_Expire(t *testing.T) {
	p, c := newPolicy(NewMemoryStore())
	ctx := context.Background()

	assert.False(t, p.Expire(ctx))

	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}
	assert.False(t, p.Expire(ctx))

	c.t = c.t.Add(5 * time.Minute)
	assert.True(t, p.Expire(ctx))
	assert.Equal(t, 0, p.Status().FailedAttempts)
}

func TestPolicy_Reset(t *testing.T) {
	store := NewMemoryStore()
	p, _ := newPolicy(store)
	ctx := context.Background()

	p.RecordFailure(ctx)
	p.RecordFailure(ctx)
	p.Reset(ctx)
	assert.Equal(t, Status{}, p.Status())

	st, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Status{}, st)
}

func TestPolicy_RestoreSurvivesRestart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p, c := newPolicy(store)
	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}

	p2 := NewPolicy(store, logging.Discard(), WithClock(c.now))
	st := p2.Restore(ctx)
	assert.Equal(t, 5, st.FailedAttempts)
	locked, _ := p2.Check(ctx)
	assert.True(t, locked)
}

func TestPolicy_LoadsStoredStatusWithoutRestore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p, c := newPolicy(store)
	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}

	p2 := NewPolicy(store, logging.Discard(), WithClock(c.now))
	st := p2.RecordFailure(ctx)
	assert.Equal(t, 5, st.FailedAttempts)
	assert.True(t, st.Locked(c.t))

	locked, remaining := p2.Check(ctx)
	assert.True(t, locked)
	assert.Equal(t, 5*time.Minute, remaining)

	stored, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, stored.FailedAttempts)
}

func TestPolicy_SharedStoreCountsAcrossPolicies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a, c := newPolicy(store)
	b := NewPolicy(store, logging.Discard(), WithClock(c.now))

	a.RecordFailure(ctx)
	b.RecordFailure(ctx)
	assert.Equal(t, 3, a.RecordFailure(ctx).FailedAttempts)

	b.Reset(ctx)
	assert.Equal(t, 1, a.RecordFailure(ctx).FailedAttempts)
}

func TestPolicy_RestoreExpiresStaleLockout(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p, c := newPolicy(store)
	for i := 0; i < 5; i++ {
		p.RecordFailure(ctx)
	}

	c.t = c.t.Add(10 * time.Minute)
	p2 := NewPolicy(store, logging.Discard(), WithClock(c.now))
	assert.Equal(t, Status{}, p2.Restore(ctx))
}

type failingStore struct{}

func (failingStore) Load(context.Context) (Status, bool, error) {
	return Status{}, false, errors.New("load")
}
func (failingStore) Save(context.Context, Status) error { return errors.New("save") }

func TestPolicy_StoreFailuresKeepMemoryState(t *testing.T) {
	p, _ := newPolicy(failingStore{})
	ctx := context.Background()

	assert.Equal(t, Status{}, p.Restore(ctx))
	p.RecordFailure(ctx)
	assert.Equal(t, 1, p.Status().FailedAttempts)
	p.RecordFailure(ctx)
	assert.Equal(t, 2, p.Status().FailedAttempts)
}

type saveFailingStore struct{ MemoryStore }

func (*saveFailingStore) Save(context.Context, Status) error { return errors.New("save") }

func TestPolicy_UnsavedStatusIsNotReplacedByStore(t *testing.T) {
	p, _ := newPolicy(&saveFailingStore{})
	ctx := context.Background()

	p.RecordFailure(ctx)
	p.RecordFailure(ctx)
	assert.Equal(t, 2, p.Status().FailedAttempts)
}

func TestPolicy_CustomConfig(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	p := NewPolicy(NewMemoryStore(), logging.Discard(), WithClock(c.now),
		WithConfig(Config{MaxAttempts: 2, Duration: time.Minute}))
	ctx := context.Background()

	assert.Equal(t, 2, p.MaxAttempts())
	assert.Equal(t, time.Minute, p.Duration())

	p.RecordFailure(ctx)
	st := p.RecordFailure(ctx)
	assert.Equal(t, c.t.Add(time.Minute), st.LockedUntil)
}

func TestStatus_Remaining(t *testing.T) {
	now := time.Unix(100, 0)
	assert.Zero(t, Status{}.Remaining(now))
	assert.Zero(t, Status{LockedUntil: now}.Remaining(now))
	assert.Equal(t, time.Second, Status{LockedUntil: now.Add(time.Second)}.Remaining(now))
}
