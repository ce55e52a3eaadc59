package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/redis"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DocumentStore = (*redis.Store)(nil)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunDocumentStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	receipt, err := store.Save(ctx, domain.Document{Name: "short lived"})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, receipt.ID, list[0].ID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	// The expired key is dropped from the listing and from the index.
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	members, err := client.ZRange(ctx, "funnelfy:index", 0, -1).Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	receipt, err := store.Save(ctx, domain.Document{ID: "launch", Name: "Launch"})
	require.NoError(t, err)
	assert.Equal(t, "launch", receipt.ID)

	assert.True(t, mr.Exists("custom:app:doc:launch"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Launch", list[0].Name)
}
