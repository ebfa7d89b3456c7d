package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/goap/pkg/adapters/redis"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunResultStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	plan := domain.Plan{Cost: 1, Path: domain.Path{domain.ActionNode("Idle")}}

	require.NoError(t, store.Save(ctx, "ttl", plan))

	loaded, err := store.Load(ctx, "ttl")
	require.NoError(t, err)
	assert.Equal(t, 1.0, loaded.Cost)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	require.NoError(t, store.Save(ctx, "k", domain.Plan{Cost: 0, Path: domain.Path{}}))

	assert.True(t, mr.Exists("custom:k"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"k"))
}

func TestRedisStore_StateNodesSurvive(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()
	store := redis.NewFromClient(client)

	start := domain.NewState("START", map[string]float64{"HasDirtyDishes": 1})
	plan := domain.Plan{Cost: 2, Path: domain.Path{domain.StateNode(start), domain.ActionNode("Idle")}, Iterations: 4}
	require.NoError(t, store.Save(ctx, "p", plan))

	loaded, err := store.Load(ctx, "p")
	require.NoError(t, err)
	require.Len(t, loaded.Path, 2)
	assert.True(t, loaded.Path[0].IsState())
	assert.Equal(t, "START", loaded.Path[0].State.Name())
	assert.True(t, start.Equal(*loaded.Path[0].State))
	assert.Equal(t, "Idle", loaded.Path[1].Action)
	assert.Equal(t, 4, loaded.Iterations)
}
