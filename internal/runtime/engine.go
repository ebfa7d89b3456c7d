package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
)

const (
	// DefaultCutoff is the iteration budget applied when none is configured.
	DefaultCutoff = 1000

	// replayMemoLimit bounds the trajectory replay memo of a single run.
	replayMemoLimit = 4096
)

// BacktrackFunc is invoked once per node of a winning path, root first.
type BacktrackFunc func(domain.Node) error

// Engine is the search core. It owns no per-run state: every run is carried by
// an explicit *domain.Search, so one Engine may serve concurrent runs as long
// as each run keeps its own context.
type Engine struct {
	collab        ports.Collaborators
	cutoff        int
	maxFrontier   int
	transposition bool
	priority      domain.PriorityFunc
	defaultValue  float64
	merge         domain.MergePolicy
	backtrack     BacktrackFunc
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithCutoff sets the iteration budget. Zero or a negative value disables it.
// A budget of n admits n-1 continue steps: the step that would reach
// iteration n fails instead.
func WithCutoff(n int) EngineOption {
	return func(e *Engine) {
		e.cutoff = n
	}
}

// WithMaxFrontier caps the frontier size (beam mode). Zero means unlimited.
func WithMaxFrontier(n int) EngineOption {
	return func(e *Engine) {
		e.maxFrontier = n
	}
}

// WithTransposition toggles the content-hash transposition table (default on).
func WithTransposition(enabled bool) EngineOption {
	return func(e *Engine) {
		e.transposition = enabled
	}
}

// WithPriority replaces the frontier ordering key.
func WithPriority(fn domain.PriorityFunc) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.priority = fn
		}
	}
}

// WithBlackboardDefault sets the value assumed for keys missing from the blackboard when merging.
func WithBlackboardDefault(v float64) EngineOption {
	return func(e *Engine) {
		e.defaultValue = v
	}
}

// WithMergePolicy sets how effects are folded into the blackboard.
func WithMergePolicy(p domain.MergePolicy) EngineOption {
	return func(e *Engine) {
		e.merge = p
	}
}

// WithBacktrack registers a per-node callback run over the winning path.
func WithBacktrack(fn BacktrackFunc) EngineOption {
	return func(e *Engine) {
		e.backtrack = fn
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine over the given collaborators.
func NewEngine(collab ports.Collaborators, opts ...EngineOption) (*Engine, error) {
	filled, err := collab.WithDefaults()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		collab:        filled,
		cutoff:        DefaultCutoff,
		transposition: true,
		priority:      domain.IterationPriority,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Cutoff returns the configured iteration budget.
func (e *Engine) Cutoff() int {
	return e.cutoff
}

// MergePolicy returns the policy used to fold effects.
func (e *Engine) MergePolicy() domain.MergePolicy {
	return e.merge
}

// BlackboardDefault returns the value assumed for missing keys when merging.
func (e *Engine) BlackboardDefault() float64 {
	return e.defaultValue
}

// Trace replays path with the engine's merge settings and reports the
// blackboard change contributed by every node.
func (e *Engine) Trace(path domain.Path) ([]domain.Step, error) {
	return domain.Trace(path, e.collab.EffectsOf, e.defaultValue, e.merge)
}
