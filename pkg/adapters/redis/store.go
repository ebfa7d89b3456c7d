package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/goap/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces plan keys.
const DefaultPrefix = "goap:plan:"

// ResultStore implements ports.ResultStore using Redis.
type ResultStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*ResultStore)

// WithTTL sets the expiration for stored plans.
func WithTTL(ttl time.Duration) Option {
	return func(s *ResultStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored plans.
func WithPrefix(prefix string) Option {
	return func(s *ResultStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis result store with options.
func New(address, password string, db int, opts ...Option) *ResultStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis result store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *ResultStore {
	store := &ResultStore{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *ResultStore) Client() *backend.Client {
	return s.client
}

func (s *ResultStore) key(key string) string {
	return s.prefix + key
}

// Save persists the plan to Redis.
func (s *ResultStore) Save(ctx context.Context, key string, plan domain.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	// Use 0 for no expiration if ttl is not set.
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the plan from Redis.
func (s *ResultStore) Load(ctx context.Context, key string) (domain.Plan, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Plan{}, domain.ErrPlanNotFound
		}
		return domain.Plan{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(val, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return plan, nil
}

// Delete removes the plan.
func (s *ResultStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Close closes the redis client.
func (s *ResultStore) Close() error {
	return s.client.Close()
}
