package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/pkg/adapters/redis"
	"github.com/careline/medtriage/pkg/domain"
	"github.com/careline/medtriage/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, redis.NewFromClient(client, opts...)
}

func TestStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunSessionStoreContract(t, store)
}

func TestStore_SaveSetsTTL(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(10*time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", "start")))

	require.True(t, mr.Exists("medtriage:session:s1"))
	ttl := mr.TTL("medtriage:session:s1")
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", "start")))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_ListPrunesExpired(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", domain.NewSession("old", "start")))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, store.Save(ctx, "new", domain.NewSession("new", "start")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "new")
	assert.NotContains(t, ids, "old")
}

func TestStore_CustomPrefix(t *testing.T) {
	mr, store := newTestStore(t, redis.WithPrefix("triage:v2:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", "start")))
	assert.True(t, mr.Exists("triage:v2:s1"))
}
