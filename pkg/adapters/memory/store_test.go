package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/pkg/adapters/memory"
	"github.com/careline/medtriage/pkg/domain"
	"github.com/careline/medtriage/pkg/ports"
)

func TestStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}

func TestStore_SweepEvictsIdleSessions(t *testing.T) {
	store := memory.NewStore(memory.WithIdleTimeout(30 * time.Minute))
	ctx := context.Background()

	stale := domain.NewSession("stale", "start")
	stale.LastActivity = time.Now().Add(-time.Hour)
	require.NoError(t, store.Save(ctx, stale.ID, stale))

	fresh := domain.NewSession("fresh", "start")
	require.NoError(t, store.Save(ctx, fresh.ID, fresh))

	evicted := store.Sweep(time.Now())
	assert.Equal(t, 1, evicted)

	_, err := store.Load(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = store.Load(ctx, "fresh")
	assert.NoError(t, err)
}

func TestStore_SweepWithoutTimeoutIsNoop(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s1", "start")
	s.LastActivity = time.Now().Add(-24 * time.Hour)
	require.NoError(t, store.Save(ctx, s.ID, s))

	assert.Equal(t, 0, store.Sweep(time.Now()))
	_, err := store.Load(ctx, "s1")
	assert.NoError(t, err)
}

func TestStore_SavePreservesLastActivity(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s1", "start")
	stamped := time.Now().Add(-45 * time.Minute).UTC()
	s.LastActivity = stamped
	require.NoError(t, store.Save(ctx, s.ID, s))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, stamped, loaded.LastActivity)
}

func TestStore_SaveCopiesInput(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s1", "start")
	require.NoError(t, store.Save(ctx, s.ID, s))

	// Mutating the caller's copy after Save must not alter the stored one.
	s.Scores["flu"] = 5

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Scores)
}
