package domain_test

import (
	"testing"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(prio float64, cost float64, action string, traj ...string) domain.Candidate {
	path := domain.Path{}
	for _, a := range traj {
		path = path.Extend(domain.ActionNode(a))
	}
	return domain.Candidate{Priority: []float64{prio}, Cost: cost, Action: action, Trajectory: path}
}

func TestFrontier_Ordering(t *testing.T) {
	f := domain.NewFrontier(0)
	f.Push(candidate(1, 5, "B"))
	f.Push(candidate(1, 2, "C"))
	f.Push(candidate(0, 9, "Z"))
	f.Push(candidate(1, 2, "A"))

	var order []string
	for f.Len() > 0 {
		c, ok := f.Pop()
		require.True(t, ok)
		order = append(order, c.Action)
	}
	// Priority first, then cost, then action key.
	assert.Equal(t, []string{"Z", "A", "C", "B"}, order)

	_, ok := f.Pop()
	assert.False(t, ok)
}

func TestFrontier_TupleDedup(t *testing.T) {
	f := domain.NewFrontier(0)

	assert.True(t, f.Push(candidate(0, 1, "A", "root")))
	assert.False(t, f.Push(candidate(0, 1, "A", "root")), "identical tuple must be rejected")
	assert.True(t, f.Push(candidate(0, 1, "A", "other")), "different trajectory is a different tuple")
	assert.True(t, f.Push(candidate(0, 2, "A", "root")), "different cost is a different tuple")
	assert.Equal(t, 3, f.Len())

	// Once popped, the same tuple may be queued again.
	for f.Len() > 0 {
		f.Pop()
	}
	assert.True(t, f.Push(candidate(0, 1, "A", "root")))
}

func TestFrontier_Cap(t *testing.T) {
	f := domain.NewFrontier(2)

	assert.True(t, f.Push(candidate(3, 1, "C")))
	assert.True(t, f.Push(candidate(1, 1, "A")))
	assert.True(t, f.Push(candidate(2, 1, "B")), "B evicts C")
	assert.False(t, f.Push(candidate(9, 1, "Z")), "worse than everything kept")

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 2, f.Dropped())

	got := f.Candidates()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Action)
	assert.Equal(t, "B", got[1].Action)

	// An evicted tuple is no longer considered a duplicate.
	f.Cap = 0
	assert.True(t, f.Push(candidate(3, 1, "C")))
}

func TestComparePriority(t *testing.T) {
	assert.Equal(t, -1, domain.ComparePriority([]float64{1}, []float64{2}))
	assert.Equal(t, 1, domain.ComparePriority([]float64{1, 5}, []float64{1, 4}))
	assert.Equal(t, -1, domain.ComparePriority([]float64{1}, []float64{1, 0}))
	assert.Equal(t, 0, domain.ComparePriority([]float64{1, 2}, []float64{1, 2}))
}

func TestSearch_RecordPath(t *testing.T) {
	s := domain.NewSearch("run", domain.NewState("START", nil), domain.NewState("END", nil), 0, true)

	assert.True(t, s.RecordPath("A", domain.PathEntry{Cost: 5}))
	assert.False(t, s.RecordPath("A", domain.PathEntry{Cost: 5}), "equal cost must not overwrite")
	assert.False(t, s.RecordPath("A", domain.PathEntry{Cost: 7}), "worse cost must not overwrite")
	assert.True(t, s.RecordPath("A", domain.PathEntry{Cost: 3}))
	assert.Equal(t, 3.0, s.Paths["A"].Cost)

	assert.Contains(t, s.Transpositions, domain.NewState("", nil).Hash(), "start hash seeds the table")
}
