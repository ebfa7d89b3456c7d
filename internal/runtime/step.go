package runtime

import (
	"context"
	"fmt"
	"math"

	"github.com/aretw0/goap/pkg/domain"
)

// Step performs exactly one search transition.
//
// It either terminates with a plan (goal reached), fails with a
// *domain.FrontierExhaustedError, or returns the continuation context. The
// continuation takes over the frontier and bookkeeping maps of s, so s must not
// be stepped again afterwards.
func (e *Engine) Step(ctx context.Context, s *domain.Search) (*domain.Search, *domain.Plan, error) {
	if s.Done() {
		return nil, s.Result, nil
	}

	// 1. State contributions fold into the running blackboard.
	blackboard := s.Blackboard
	if s.Position.IsState() {
		blackboard = blackboard.Merge(*s.Position.State, e.defaultValue, e.merge)
	}

	// 2. Goal test.
	if e.collab.GoalSatisfied(blackboard, s.Goal) {
		plan := &domain.Plan{
			Cost:       s.Cost,
			Path:       s.Trajectory.Extend(s.Position),
			Iterations: s.Iteration,
		}
		return nil, plan, nil
	}

	// 3. Visited gate and transposition table.
	s.Visited[domain.VisitKey(s.Position, blackboard)] = struct{}{}
	if s.Transpositions != nil {
		s.Transpositions[blackboard.Hash()] = struct{}{}
	}

	// 4. Expansion.
	if err := e.expand(s, blackboard); err != nil {
		return nil, nil, err
	}

	// 5. Structural exhaustion.
	cand, ok := s.Frontier.Pop()
	if !ok {
		return nil, nil, &domain.FrontierExhaustedError{Iterations: s.Iteration, Expanded: len(s.Paths)}
	}

	// 6. Continue with the best candidate.
	next := domain.ActionNode(cand.Action)
	replayed, err := e.replay(s, cand.Trajectory.Extend(next))
	if err != nil {
		return nil, nil, err
	}

	e.logger.Debug("search step",
		"run", s.RunID,
		"iteration", s.Iteration,
		"next", cand.Action,
		"cost", cand.Cost,
		"frontier", s.Frontier.Len(),
	)

	return &domain.Search{
		RunID:          s.RunID,
		Position:       next,
		Trajectory:     cand.Trajectory,
		Goal:           s.Goal,
		Blackboard:     replayed,
		Cost:           cand.Cost,
		Iteration:      s.Iteration + 1,
		Frontier:       s.Frontier,
		Paths:          s.Paths,
		Visited:        s.Visited,
		Transpositions: s.Transpositions,
		Replays:        s.Replays,
	}, nil, nil
}

// expand scores every neighbor of the current position and queues the viable ones.
func (e *Engine) expand(s *domain.Search, blackboard domain.State) error {
	neighbors, err := e.collab.Adjacency(s.Position)
	if err != nil {
		return fmt.Errorf("adjacency of %s: %w", s.Position, err)
	}

	trajectory := s.Trajectory.Extend(s.Position)
	for _, key := range neighbors {
		met, err := e.collab.PreconditionsMet(key, blackboard)
		if err != nil {
			return fmt.Errorf("preconditions of %s: %w", key, err)
		}
		if !met {
			// Infinite heuristic. Its forecast is not computed: an infinite entry
			// can never displace a recorded path, so nothing would read it.
			continue
		}

		effects, err := e.collab.EffectsOf(key)
		if err != nil {
			return fmt.Errorf("effects of %s: %w", key, err)
		}
		forecast := blackboard.Merge(effects, e.defaultValue, e.merge)

		if _, seen := s.Visited[domain.VisitKey(domain.ActionNode(key), forecast)]; seen {
			continue
		}
		if s.Transpositions != nil {
			if _, seen := s.Transpositions[forecast.Hash()]; seen {
				continue
			}
		}

		edge, err := e.collab.EdgeCost(s.Position, key)
		if err != nil {
			return fmt.Errorf("edge cost %s -> %s: %w", s.Position, key, err)
		}
		distance, err := e.collab.GoalDistance(key, s.Goal)
		if err != nil {
			return fmt.Errorf("goal distance of %s: %w", key, err)
		}
		heuristic := edge + distance
		total := s.Cost + heuristic
		if math.IsInf(total, 1) || math.IsNaN(total) {
			continue
		}

		s.RecordPath(key, domain.PathEntry{Cost: total, Parent: s.Position, Trajectory: trajectory})

		s.Frontier.Push(domain.Candidate{
			Priority:   e.priority(s.Iteration, s.Cost, heuristic),
			Cost:       total,
			Action:     key,
			Trajectory: trajectory,
		})
	}
	return nil
}

// replay rebuilds the blackboard at the end of a trajectory by folding every
// contribution from an empty state. Prefixes are memoized per run, so siblings
// sharing a prefix only pay for their own last step.
func (e *Engine) replay(s *domain.Search, path domain.Path) (domain.State, error) {
	hashes := make([]uint64, len(path))
	var h uint64
	for i, n := range path {
		h = domain.PrefixHash(h, n)
		hashes[i] = h
	}

	from := 0
	blackboard := domain.NewState("", nil)
	for i := len(path) - 1; i >= 0; i-- {
		if memo, ok := s.Replays[hashes[i]]; ok {
			blackboard = memo
			from = i + 1
			break
		}
	}

	for i := from; i < len(path); i++ {
		n := path[i]
		var contribution domain.State
		if n.IsState() {
			contribution = *n.State
		} else {
			effects, err := e.collab.EffectsOf(n.Action)
			if err != nil {
				return domain.State{}, fmt.Errorf("effects of %s: %w", n.Action, err)
			}
			contribution = effects
		}
		blackboard = blackboard.Merge(contribution, e.defaultValue, e.merge)

		if len(s.Replays) >= replayMemoLimit {
			clear(s.Replays)
		}
		s.Replays[hashes[i]] = blackboard
	}
	return blackboard, nil
}
