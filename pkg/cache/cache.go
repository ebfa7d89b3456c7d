package cache

import (
	"container/list"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// SolveFunc is the signature of a whole planner invocation.
type SolveFunc func(ctx context.Context, start, goal domain.State) (domain.Plan, error)

// Key derives the cache key of a (start, goal) pair from their content hashes.
// Names do not participate, and the pair is ordered.
func Key(start, goal domain.State) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], start.Hash())
	binary.LittleEndian.PutUint64(buf[8:], goal.Hash())
	return xxhash.Sum64(buf[:])
}

// KeyString is the textual form of a key used by result stores and locks.
func KeyString(key uint64) string {
	return fmt.Sprintf("%016x", key)
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

type entry struct {
	key  uint64
	plan domain.Plan
}

// Cache memoizes successful plans by (start, goal).
//
// The local tier is an LRU bounded by Capacity (0 means unbounded). An optional
// ResultStore acts as a shared second tier and an optional DistributedLocker
// serializes fills across processes. Concurrent misses on the same key are
// collapsed into one solve.
//
// Correctness assumes the catalogue and collaborators behind the wrapped
// solver do not change while entries are cached; call Purge when they do.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[uint64]*list.Element
	lru      *list.List
	flight   singleflight.Group

	scope   string
	store   ports.ResultStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	observe func(hit bool)
	logger  *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Option configures the Cache.
type Option func(*Cache)

// WithCapacity bounds the number of locally cached plans. 0 means unbounded.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = n
	}
}

// WithScope namespaces the names used in the shared tier and for fill locks,
// so planners over different catalogues never read each other's plans.
func WithScope(scope string) Option {
	return func(c *Cache) {
		c.scope = scope
	}
}

// WithStore adds a shared second tier.
func WithStore(store ports.ResultStore) Option {
	return func(c *Cache) {
		c.store = store
	}
}

// WithLocker serializes fills of the same key across processes.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Cache) {
		c.locker = locker
		c.lockTTL = ttl
	}
}

// WithLookupObserver is called on every lookup with its outcome (used for metrics).
func WithLookupObserver(fn func(hit bool)) Option {
	return func(c *Cache) {
		c.observe = fn
	}
}

// WithLogger sets a custom structured logger for the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		items:   make(map[uint64]*list.Element),
		lru:     list.New(),
		lockTTL: 30 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the plan cached locally under key.
func (c *Cache) Get(key uint64) (domain.Plan, bool) {
	c.mu.Lock()
	el, ok := c.items[key]
	if ok {
		c.lru.MoveToFront(el)
	}
	c.mu.Unlock()

	c.record(ok)
	if !ok {
		return domain.Plan{}, false
	}
	return el.Value.(*entry).plan.Clone(), true
}

// Put stores a plan locally, evicting the least recently used entry when full.
// Failed plans are ignored.
func (c *Cache) Put(key uint64, plan domain.Plan) {
	if !plan.Found() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).plan = plan.Clone()
		c.lru.MoveToFront(el)
		return
	}
	c.items[key] = c.lru.PushFront(&entry{key: key, plan: plan.Clone()})

	for c.capacity > 0 && c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
		c.evictions.Add(1)
	}
}

// Evict drops one key from the local tier. It reports whether the key was present.
func (c *Cache) Evict(key uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if ok {
		c.lru.Remove(el)
		delete(c.items, key)
	}
	return ok
}

// Purge empties the local tier.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[uint64]*list.Element)
	c.lru.Init()
}

// Len returns the number of locally cached plans.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}

func (c *Cache) record(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	if c.observe != nil {
		c.observe(hit)
	}
}

// Wrap returns a memoized version of solve. Only successful plans are cached;
// errors are returned to every caller that shared the solve.
func (c *Cache) Wrap(solve SolveFunc) SolveFunc {
	return func(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
		key := Key(start, goal)
		if plan, ok := c.Get(key); ok {
			return plan, nil
		}

		name := c.sharedName(key)
		v, err, shared := c.flight.Do(name, func() (any, error) {
			return c.fill(ctx, key, start, goal, solve)
		})
		if err != nil {
			return domain.Plan{}, err
		}
		if shared {
			c.logger.Debug("plan shared with concurrent caller", "key", name)
		}
		return v.(domain.Plan).Clone(), nil
	}
}

func (c *Cache) fill(ctx context.Context, key uint64, start, goal domain.State, solve SolveFunc) (domain.Plan, error) {
	name := c.sharedName(key)

	if plan, ok := c.loadShared(ctx, name); ok {
		c.Put(key, plan)
		return plan, nil
	}

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, "plan:"+name, c.lockTTL)
		if err != nil {
			return domain.Plan{}, fmt.Errorf("lock plan %s: %w", name, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("failed to release plan lock", "key", name, "error", err)
			}
		}()

		// Another process may have solved it while we waited.
		if plan, ok := c.loadShared(ctx, name); ok {
			c.Put(key, plan)
			return plan, nil
		}
	}

	plan, err := solve(ctx, start, goal)
	if err != nil {
		return domain.Plan{}, err
	}
	c.Put(key, plan)

	if c.store != nil && plan.Found() {
		if err := c.store.Save(ctx, name, plan); err != nil {
			c.logger.Warn("failed to share plan", "key", name, "error", err)
		}
	}
	return plan, nil
}

func (c *Cache) sharedName(key uint64) string {
	if c.scope == "" {
		return KeyString(key)
	}
	return c.scope + ":" + KeyString(key)
}

func (c *Cache) loadShared(ctx context.Context, name string) (domain.Plan, bool) {
	if c.store == nil {
		return domain.Plan{}, false
	}
	plan, err := c.store.Load(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrPlanNotFound) {
			c.logger.Warn("failed to load shared plan", "key", name, "error", err)
		}
		return domain.Plan{}, false
	}
	return plan, plan.Found()
}
