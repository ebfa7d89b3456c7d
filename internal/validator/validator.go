package validator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
)

// ErrUnreachable is matched by reports listing actions that can never fire.
var ErrUnreachable = errors.New("unreachable actions")

// Report is the outcome of a relaxed reachability crawl.
type Report struct {
	// Reachable lists actions in the order the crawl could first fire them.
	Reachable   []string
	Unreachable []string
	// Bounds holds the highest value each condition can reach, +Inf when an
	// action can keep increasing it.
	Bounds map[string]float64
}

// Crawl fires every action whose preconditions the relaxed blackboard meets,
// until nothing new fires. Negative effects are ignored and positive ones are
// assumed repeatable, so a catalogue action missing from Reachable can never
// run from seed under the default merge policy.
func Crawl(c domain.Catalogue, seed domain.State) Report {
	bounds := seed.Values()
	fired := make(map[string]bool, len(c))
	keys := c.Keys()

	var report Report
	for progress := true; progress; {
		progress = false
		for _, key := range keys {
			if fired[key] {
				continue
			}
			a := c[key]
			if !a.Satisfied(domain.NewState("", bounds)) {
				continue
			}

			fired[key] = true
			progress = true
			report.Reachable = append(report.Reachable, key)
			for _, k := range a.Effects.Keys() {
				if delta, _ := a.Effects.Lookup(k); delta > 0 {
					bounds[k] = math.Inf(1)
				}
			}
		}
	}

	for _, key := range keys {
		if !fired[key] {
			report.Unreachable = append(report.Unreachable, key)
		}
	}
	report.Bounds = bounds
	return report
}

// Validate checks costs and reports actions that can never fire from seed.
func Validate(c domain.Catalogue, seed domain.State) error {
	var errs []error
	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}

	report := Crawl(c, seed)
	if len(report.Unreachable) > 0 {
		errs = append(errs, fmt.Errorf("%w from %s: %s", ErrUnreachable, seed, strings.Join(report.Unreachable, ", ")))
	}
	return errors.Join(errs...)
}

// CheckGoal reports goal conditions no plan can raise to their target value.
// It is a necessary condition only: a nil result does not promise a plan.
func CheckGoal(c domain.Catalogue, seed, goal domain.State) error {
	bounds := Crawl(c, seed).Bounds

	var missing []string
	for _, k := range goal.Keys() {
		want, _ := goal.Lookup(k)
		if bounds[k] < want {
			missing = append(missing, fmt.Sprintf("%s (needs %g, reaches %g)", k, want, bounds[k]))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("goal cannot be reached: %s", strings.Join(missing, ", "))
	}
	return nil
}
