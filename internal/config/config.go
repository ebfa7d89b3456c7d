package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/internal/logging"
	"github.com/aretw0/goap/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Config is the planner configuration read by the CLI.
type Config struct {
	// Cutoff is the iteration budget; nil keeps the default and 0 disables it.
	Cutoff            *int        `yaml:"cutoff"`
	MaxFrontier       int         `yaml:"max_frontier"`
	Transposition     *bool       `yaml:"transposition"`
	BlackboardDefault float64     `yaml:"blackboard_default"`
	Priority          string      `yaml:"priority"`
	Goal              string      `yaml:"goal"`
	Merge             MergeConfig `yaml:"merge"`
	Cache             CacheConfig `yaml:"cache"`
	LogLevel          string      `yaml:"log_level"`
}

// MergeConfig selects how effects are folded into the blackboard.
type MergeConfig struct {
	Default string            `yaml:"default"`
	Keys    map[string]string `yaml:"keys"`
}

// CacheConfig enables the result cache. A zero value leaves it off.
type CacheConfig struct {
	Enabled  bool        `yaml:"enabled"`
	Capacity int         `yaml:"capacity"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig shares cached plans through Redis when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Load reads a YAML (or JSON) configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// CacheEnabled reports whether any cache setting asks for the result cache.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled || c.Cache.Capacity > 0 || c.Cache.Redis.Addr != ""
}

// Options translates the configuration into planner options.
func (c Config) Options() ([]goap.Option, error) {
	var opts []goap.Option

	if c.Cutoff != nil {
		opts = append(opts, goap.WithCutoff(*c.Cutoff))
	}
	if c.MaxFrontier > 0 {
		opts = append(opts, goap.WithMaxFrontier(c.MaxFrontier))
	}
	if c.Transposition != nil {
		opts = append(opts, goap.WithTransposition(*c.Transposition))
	}
	if c.BlackboardDefault != 0 {
		opts = append(opts, goap.WithBlackboardDefault(c.BlackboardDefault))
	}

	if c.Priority != "" {
		fn, err := domain.ParsePriority(c.Priority)
		if err != nil {
			return nil, err
		}
		opts = append(opts, goap.WithPriority(fn))
	}

	if c.Goal != "" {
		check, err := domain.ParseGoalCheck(c.Goal)
		if err != nil {
			return nil, err
		}
		opts = append(opts, goap.WithGoalCheck(check))
	}

	if c.Merge.Default != "" || len(c.Merge.Keys) > 0 {
		policy, err := c.Merge.Policy()
		if err != nil {
			return nil, err
		}
		opts = append(opts, goap.WithMergePolicy(policy))
	}

	return opts, nil
}

// Policy builds the merge policy.
func (m MergeConfig) Policy() (domain.MergePolicy, error) {
	policy := domain.Uniform(domain.Add)
	if m.Default != "" {
		op, err := domain.ParseMergeOp(m.Default)
		if err != nil {
			return domain.MergePolicy{}, err
		}
		policy = domain.Uniform(op)
	}
	for key, name := range m.Keys {
		op, err := domain.ParseMergeOp(name)
		if err != nil {
			return domain.MergePolicy{}, fmt.Errorf("merge key %q: %w", key, err)
		}
		policy = policy.WithKey(key, op)
	}
	return policy, nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
