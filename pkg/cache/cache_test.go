package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/cache"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func st(values map[string]float64) domain.State {
	return domain.NewState("", values)
}

// countingSolver returns a one-step plan named after the goal and counts calls.
func countingSolver(calls *atomic.Int32) cache.SolveFunc {
	return func(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
		calls.Add(1)
		return domain.Plan{
			Cost: 1,
			Path: domain.Path{domain.StateNode(start), domain.ActionNode("To" + goal.String())},
		}, nil
	}
}

func TestKey(t *testing.T) {
	a := st(map[string]float64{"x": 1, "y": 2})
	b := domain.NewState("named", map[string]float64{"y": 2, "x": 1})
	g := st(map[string]float64{"z": 1})

	assert.Equal(t, cache.Key(a, g), cache.Key(b, g), "content keyed, names ignored")
	assert.NotEqual(t, cache.Key(a, g), cache.Key(g, a), "the pair is ordered")
	assert.Len(t, cache.KeyString(cache.Key(a, g)), 16)
}

func TestCache_Wrap(t *testing.T) {
	ctx := context.Background()

	t.Run("Repeat Queries Hit", func(t *testing.T) {
		var calls atomic.Int32
		c := cache.New()
		solve := c.Wrap(countingSolver(&calls))

		start, goal := st(map[string]float64{"x": 1}), st(map[string]float64{"y": 1})
		first, err := solve(ctx, start, goal)
		require.NoError(t, err)
		second, err := solve(ctx, domain.NewState("again", map[string]float64{"x": 1}), goal)
		require.NoError(t, err)

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, first.Cost, second.Cost)
		assert.Equal(t, first.Path.String(), second.Path.String())

		stats := c.Stats()
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, 1, stats.Size)
	})

	t.Run("Returned Plans Are Independent", func(t *testing.T) {
		var calls atomic.Int32
		c := cache.New()
		solve := c.Wrap(countingSolver(&calls))

		start, goal := st(nil), st(map[string]float64{"y": 1})
		p1, _ := solve(ctx, start, goal)
		p1.Path[1] = domain.ActionNode("Tampered")

		p2, _ := solve(ctx, start, goal)
		assert.NotEqual(t, "Tampered", p2.Path[1].Action)
	})

	t.Run("Failures Are Not Cached", func(t *testing.T) {
		var calls atomic.Int32
		c := cache.New()
		solve := c.Wrap(func(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
			calls.Add(1)
			return domain.Plan{}, &domain.FrontierExhaustedError{}
		})

		for i := 0; i < 3; i++ {
			_, err := solve(ctx, st(nil), st(map[string]float64{"y": 1}))
			assert.ErrorIs(t, err, domain.ErrNoPath)
		}
		assert.Equal(t, int32(3), calls.Load())
		assert.Zero(t, c.Len())
	})

	t.Run("Sentinel Plans Are Not Cached", func(t *testing.T) {
		var calls atomic.Int32
		c := cache.New()
		solve := c.Wrap(func(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
			calls.Add(1)
			return domain.NoPlan(), nil
		})

		_, _ = solve(ctx, st(nil), st(nil))
		_, _ = solve(ctx, st(nil), st(nil))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Concurrent Misses Collapse", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		c := cache.New()
		solve := c.Wrap(func(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
			calls.Add(1)
			<-release
			return domain.Plan{Cost: 2, Path: domain.Path{domain.StateNode(start)}}, nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				plan, err := solve(ctx, st(nil), st(map[string]float64{"y": 1}))
				assert.NoError(t, err)
				assert.Equal(t, 2.0, plan.Cost)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int32(8))
		assert.GreaterOrEqual(t, calls.Load(), int32(1))
		assert.Equal(t, 1, c.Len())
	})
}

func TestCache_LRU(t *testing.T) {
	c := cache.New(cache.WithCapacity(2))
	plan := func(cost float64) domain.Plan { return domain.Plan{Cost: cost, Path: domain.Path{}} }

	c.Put(1, plan(1))
	c.Put(2, plan(2))
	_, ok := c.Get(1) // 1 becomes most recent
	require.True(t, ok)
	c.Put(3, plan(3)) // evicts 2

	_, ok = c.Get(2)
	assert.False(t, ok)
	p, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 1.0, p.Cost)
	_, ok = c.Get(3)
	assert.True(t, ok)

	assert.Equal(t, int64(1), c.Stats().Evictions)
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Evict(3))
	assert.False(t, c.Evict(3))
	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCache_Unbounded(t *testing.T) {
	c := cache.New()
	for i := uint64(0); i < 100; i++ {
		c.Put(i, domain.Plan{Cost: float64(i), Path: domain.Path{}})
	}
	assert.Equal(t, 100, c.Len())
	assert.Zero(t, c.Stats().Evictions)
}

func TestCache_SharedStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewResultStore()
	var calls atomic.Int32

	first := cache.New(cache.WithStore(store))
	_, err := first.Wrap(countingSolver(&calls))(ctx, st(nil), st(map[string]float64{"y": 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	// A second, cold cache finds the plan in the shared tier.
	second := cache.New(cache.WithStore(store))
	plan, err := second.Wrap(countingSolver(&calls))(ctx, st(nil), st(map[string]float64{"y": 1}))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1.0, plan.Cost)
	assert.Equal(t, 1, second.Len())
}

type recordingLocker struct {
	mu     sync.Mutex
	locked []string
	fail   error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.mu.Unlock()
	return func(context.Context) error { return nil }, nil
}

func TestCache_Locker(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32

	t.Run("Locks Around Fill", func(t *testing.T) {
		locker := &recordingLocker{}
		c := cache.New(cache.WithStore(memory.NewResultStore()), cache.WithLocker(locker, time.Second))
		_, err := c.Wrap(countingSolver(&calls))(ctx, st(nil), st(map[string]float64{"y": 1}))
		require.NoError(t, err)

		key := cache.KeyString(cache.Key(st(nil), st(map[string]float64{"y": 1})))
		assert.Equal(t, []string{"plan:" + key}, locker.locked)
	})

	t.Run("Scope Namespaces Shared Names", func(t *testing.T) {
		locker := &recordingLocker{}
		store := memory.NewResultStore()
		c := cache.New(cache.WithScope("cat1"), cache.WithStore(store), cache.WithLocker(locker, time.Second))
		_, err := c.Wrap(countingSolver(&calls))(ctx, st(nil), st(map[string]float64{"w": 1}))
		require.NoError(t, err)

		key := cache.KeyString(cache.Key(st(nil), st(map[string]float64{"w": 1})))
		assert.Equal(t, []string{"plan:cat1:" + key}, locker.locked)

		_, err = store.Load(ctx, "cat1:"+key)
		assert.NoError(t, err)
		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("Lock Failure Surfaces", func(t *testing.T) {
		boom := errors.New("lock unavailable")
		c := cache.New(cache.WithLocker(&recordingLocker{fail: boom}, time.Second))
		_, err := c.Wrap(countingSolver(&calls))(ctx, st(nil), st(map[string]float64{"z": 1}))
		assert.ErrorIs(t, err, boom)
	})
}
