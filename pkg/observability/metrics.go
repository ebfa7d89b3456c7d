package observability

import (
	"context"
	"errors"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "goap"

// Collector records planner metrics in Prometheus.
type Collector struct {
	steps        prometheus.Counter
	runs         *prometheus.CounterVec
	planCost     prometheus.Histogram
	planLength   prometheus.Histogram
	iterations   prometheus.Histogram
	cacheLookups *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_steps_total",
			Help:      "Total number of non-terminal search steps",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Planning runs by outcome",
		}, []string{"outcome"}),
		planCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_cost",
			Help:      "Total cost of found plans",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		planLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_length",
			Help:      "Number of nodes in found plans",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Iterations used by finished runs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups by result",
		}, []string{"result"}),
	}

	for _, m := range []prometheus.Collector{c.steps, c.runs, c.planCost, c.planLength, c.iterations, c.cacheLookups} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns lifecycle hooks that feed the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			c.steps.Inc()
		},
		OnSolved: func(ctx context.Context, e *domain.SolvedEvent) {
			c.runs.WithLabelValues("solved").Inc()
			c.planCost.Observe(e.Plan.Cost)
			c.planLength.Observe(float64(len(e.Plan.Path)))
			c.iterations.Observe(float64(e.Plan.Iterations))
		},
		OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
			c.runs.WithLabelValues(outcome(e.Err)).Inc()
			c.iterations.Observe(float64(e.Iteration))
		},
	}
}

// ObserveCacheLookup counts a result cache lookup. It fits cache.WithLookupObserver.
func (c *Collector) ObserveCacheLookup(hit bool) {
	if hit {
		c.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	c.cacheLookups.WithLabelValues("miss").Inc()
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrBudgetExhausted):
		return "budget_exhausted"
	case errors.Is(err, domain.ErrFrontierExhausted):
		return "frontier_exhausted"
	default:
		return "error"
	}
}
