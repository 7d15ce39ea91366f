package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier/internal/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, newTestStore(t))
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, redis.WithPrefix("other:"), redis.WithTTL(time.Hour))

	require.NoError(t, store.Save(ctx, domain.NewSession("prefixed")))

	loaded, err := store.Load(ctx, "prefixed")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", loaded.ID)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "prefixed")
}
