package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/internal/config"
	redisAdapter "github.com/aretw0/goap/pkg/adapters/redis"
	"github.com/aretw0/goap/pkg/cache"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// ConfigEnv names the configuration file when --config is not set.
const ConfigEnv = "GOAP_CONFIG"

// lockTTL bounds how long one process may hold a shared cache fill.
const lockTTL = 30 * time.Second

// App holds a planner together with the infrastructure built for it. Metrics
// and the shared store outlive Reload, so counters keep accumulating across
// catalogue changes.
type App struct {
	Config   config.Config
	Registry *prometheus.Registry
	Metrics  *observability.Collector
	Logger   *slog.Logger

	planner atomic.Pointer[goap.Planner]
	opts    RunOptions
	hooks   []domain.LifecycleHooks
	store   *redisAdapter.ResultStore
}

// Build loads the configuration and the catalogue and wires the planner.
// Extra hooks (e.g. the HTTP event stream) are chained after metrics and logging.
func Build(opts RunOptions, extra ...domain.LifecycleHooks) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Registry: prometheus.NewRegistry(),
		Logger:   createLogger(opts.Debug, cfg),
		opts:     opts,
		hooks:    extra,
	}

	app.Metrics, err = observability.NewCollector(app.Registry)
	if err != nil {
		return nil, err
	}

	if addr := cfg.Cache.Redis.Addr; addr != "" {
		app.store = redisAdapter.New(addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
			redisAdapter.WithPrefix(app.redisPrefix()),
			redisAdapter.WithTTL(cfg.Cache.Redis.TTL),
		)
	}

	p, err := app.newPlanner()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.planner.Store(p)
	return app, nil
}

// Planner returns the most recently built planner. It is safe to call while
// Reload runs in another goroutine.
func (a *App) Planner() *goap.Planner {
	return a.planner.Load()
}

// Reload rereads the catalogue and makes the fresh planner current. Shared
// plans are scoped by catalogue fingerprint, so the new planner never reads
// plans solved against the previous catalogue.
func (a *App) Reload() (*goap.Planner, error) {
	p, err := a.newPlanner()
	if err != nil {
		return nil, err
	}
	a.planner.Store(p)
	return p, nil
}

// Close releases the shared cache connection.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *App) newPlanner() (*goap.Planner, error) {
	opts, err := a.Config.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// 1. Logger & Hooks
	hooks := []domain.LifecycleHooks{a.Metrics.Hooks()}
	if a.opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(a.Logger))
	}
	hooks = append(hooks, a.hooks...)
	opts = append(opts,
		goap.WithLogger(a.Logger),
		goap.WithLifecycleHooks(observability.Chain(hooks...)),
	)

	// 2. Result cache, shared through Redis when configured
	if a.Config.CacheEnabled() {
		cacheOpts := []cache.Option{
			cache.WithCapacity(a.Config.Cache.Capacity),
			cache.WithLookupObserver(a.Metrics.ObserveCacheLookup),
		}
		if a.store != nil {
			cacheOpts = append(cacheOpts,
				cache.WithStore(a.store),
				cache.WithLocker(redisAdapter.NewLocker(a.store.Client(), a.redisPrefix()), lockTTL),
			)
		}
		opts = append(opts, goap.WithCache(cacheOpts...))
	}

	// 3. Initialize
	p, err := goap.Open(a.opts.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing planner: %w", err)
	}
	return p, nil
}

func (a *App) redisPrefix() string {
	if a.Config.Cache.Redis.Prefix != "" {
		return a.Config.Cache.Redis.Prefix
	}
	return redisAdapter.DefaultPrefix
}

// loadConfig reads --config, falling back to $GOAP_CONFIG, then applies the
// command line overrides. Without a file the defaults apply. The file never
// lives inside a catalogue directory, where it would be read as an action.
func loadConfig(opts RunOptions) (config.Config, error) {
	var cfg config.Config
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	opts.apply(&cfg)
	return cfg, nil
}
