package goap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/goap/internal/runtime"
	loamAdapter "github.com/aretw0/goap/pkg/adapters/loam"
	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/cache"
	"github.com/aretw0/goap/pkg/catalogue"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
)

// Planner is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Planner struct {
	runtime   *runtime.Engine
	catalogue domain.Catalogue
	loader    ports.CatalogueLoader
	cache     *cache.Cache
	solve     cache.SolveFunc

	runtimeOpts []runtime.EngineOption
	cacheOpts   []cache.Option
	cached      bool
	goalCheck   domain.GoalCheck
	heuristic   func(action string, goal domain.State) float64
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithCutoff sets the iteration budget (default 1000). Zero disables it.
func WithCutoff(n int) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithCutoff(n))
	}
}

// WithMaxFrontier caps the frontier size. Zero means unlimited.
func WithMaxFrontier(n int) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithMaxFrontier(n))
	}
}

// WithTransposition toggles the transposition table (default on).
func WithTransposition(enabled bool) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithTransposition(enabled))
	}
}

// WithPriority replaces the frontier ordering key (default domain.IterationPriority).
func WithPriority(fn domain.PriorityFunc) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithPriority(fn))
	}
}

// WithBlackboardDefault sets the value assumed for missing keys when effects are merged.
func WithBlackboardDefault(v float64) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithBlackboardDefault(v))
	}
}

// WithMergePolicy sets how effects are folded into the blackboard (default add).
func WithMergePolicy(policy domain.MergePolicy) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithMergePolicy(policy))
	}
}

// WithBacktrack registers a callback run over every node of a found plan, root first.
func WithBacktrack(fn func(domain.Node) error) Option {
	return func(p *Planner) {
		p.runtimeOpts = append(p.runtimeOpts, runtime.WithBacktrack(fn))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Planner) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the planner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithGoalCheck sets the goal comparator used with catalogues (default domain.GoalAtLeast).
// It has no effect on planners built from bare collaborators.
func WithGoalCheck(check domain.GoalCheck) Option {
	return func(p *Planner) {
		p.goalCheck = check
	}
}

// WithHeuristic sets the goal-distance estimate used with catalogues (default 0).
func WithHeuristic(h func(action string, goal domain.State) float64) Option {
	return func(p *Planner) {
		p.heuristic = h
	}
}

// WithCache memoizes successful plans by (start, goal). Planners built from a
// catalogue scope the shared tier by the catalogue's fingerprint.
func WithCache(opts ...cache.Option) Option {
	return func(p *Planner) {
		p.cached = true
		p.cacheOpts = append(p.cacheOpts, opts...)
	}
}

// WithLoader injects a custom CatalogueLoader, bypassing the default file and Loam loaders.
func WithLoader(l ports.CatalogueLoader) Option {
	return func(p *Planner) {
		p.loader = l
	}
}

// New builds a planner over bare collaborator functions.
func New(collab ports.Collaborators, opts ...Option) (*Planner, error) {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}
	return p.init(collab)
}

// FromCatalogue builds a planner over an in-memory action catalogue.
func FromCatalogue(c domain.Catalogue, opts ...Option) (*Planner, error) {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}
	return p.fromCatalogue(c)
}

// Open loads a catalogue and builds a planner over it.
// A directory is read with Loam (one action per document), a file with the
// catalogue codec. If WithLoader option is provided, path is only used as a label.
func Open(path string, opts ...Option) (*Planner, error) {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}

	if p.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		loader, err := openLoader(path)
		if err != nil {
			return nil, err
		}
		p.loader = loader
	}
	if path != "" {
		p.Name = filepath.Base(path)
	}

	c, err := p.loader.LoadCatalogue(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	return p.fromCatalogue(c)
}

func openLoader(path string) (ports.CatalogueLoader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(absPath)
	}
	return catalogue.NewFileLoader(absPath), nil
}

func (p *Planner) fromCatalogue(c domain.Catalogue) (*Planner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p.catalogue = c

	graphOpts := []memory.GraphOption{memory.WithGoalCheck(p.goalCheck)}
	if p.heuristic != nil {
		graphOpts = append(graphOpts, memory.WithHeuristic(p.heuristic))
	}
	return p.init(memory.NewGraph(c, graphOpts...).Collaborators())
}

func (p *Planner) init(collab ports.Collaborators) (*Planner, error) {
	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if p.logger == nil {
		p.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if p.Name != "" {
		p.logger = p.logger.With("catalogue", p.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(p.hooks),
		runtime.WithLogger(p.logger),
	}
	runtimeOpts = append(runtimeOpts, p.runtimeOpts...)

	engine, err := runtime.NewEngine(collab, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	p.runtime = engine

	p.solve = p.search
	if p.cached {
		cacheOpts := []cache.Option{cache.WithLogger(p.logger)}
		if p.catalogue != nil {
			cacheOpts = append(cacheOpts, cache.WithScope(fmt.Sprintf("%016x", p.catalogue.Hash())))
		}
		cacheOpts = append(cacheOpts, p.cacheOpts...)
		p.cache = cache.New(cacheOpts...)
		p.solve = p.cache.Wrap(p.search)
	}
	return p, nil
}

// search drives one run, honouring ctx between steps.
func (p *Planner) search(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
	for s, err := range p.runtime.Steps(ctx, start, goal) {
		if err != nil {
			return domain.Plan{}, err
		}
		if s.Result != nil {
			return *s.Result, nil
		}
		if err := ctx.Err(); err != nil {
			return domain.Plan{}, err
		}
	}
	return domain.Plan{}, errors.New("search ended without a result")
}

// FindPlan returns the cheapest plan found from start to goal. Failures match
// domain.ErrNoPath; collaborator errors and context cancellation are returned as they are.
func (p *Planner) FindPlan(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
	return p.solve(ctx, start, goal)
}

// MaybeFindPlan reports a missing path as domain.NoPlan() instead of an error.
func (p *Planner) MaybeFindPlan(ctx context.Context, start, goal domain.State) (domain.Plan, error) {
	plan, err := p.FindPlan(ctx, start, goal)
	if errors.Is(err, domain.ErrNoPath) {
		return domain.NoPlan(), nil
	}
	return plan, err
}

// Steps exposes a run as a lazy sequence of search contexts, bypassing the cache.
func (p *Planner) Steps(ctx context.Context, start, goal domain.State) iter.Seq2[*domain.Search, error] {
	return p.runtime.Steps(ctx, start, goal)
}

// Trace replays a plan and reports how each node changed the blackboard.
func (p *Planner) Trace(plan domain.Plan) ([]domain.Step, error) {
	return p.runtime.Trace(plan.Path)
}

// Solver returns the planner as a plain function, memoized with its own cache.
func (p *Planner) Solver(opts ...cache.Option) cache.SolveFunc {
	return cache.New(opts...).Wrap(p.search)
}

// Catalogue returns the actions the planner searches over, or nil when built from bare collaborators.
func (p *Planner) Catalogue() domain.Catalogue {
	return p.catalogue
}

// Cache returns the result cache, or nil when WithCache was not used.
func (p *Planner) Cache() *cache.Cache {
	return p.cache
}

// Loader returns the loader the catalogue came from, if any.
func (p *Planner) Loader() ports.CatalogueLoader {
	return p.loader
}

// Watch returns a channel that signals when the underlying catalogue changes.
// Returns error if the loader does not support watching.
func (p *Planner) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := p.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

var _ ports.Planner = (*Planner)(nil)
