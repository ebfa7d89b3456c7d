package domain

import (
	"container/heap"
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Candidate is a frontier entry. Trajectory is the prefix leading up to (and
// excluding) Action; it is shared read-only between siblings.
type Candidate struct {
	Priority   []float64
	Cost       float64
	Action     string
	Trajectory Path

	seq uint64
	fp  uint64
}

// less orders by priority key, then cost, then action key, then insertion order.
func (c Candidate) less(o Candidate) bool {
	if cmp := ComparePriority(c.Priority, o.Priority); cmp != 0 {
		return cmp < 0
	}
	if c.Cost != o.Cost {
		return c.Cost < o.Cost
	}
	if c.Action != o.Action {
		return c.Action < o.Action
	}
	return c.seq < o.seq
}

// fingerprint identifies the exact (priority, cost, action, trajectory) tuple.
func (c Candidate) fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range c.Priority {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p))
		_, _ = d.Write(buf[:])
	}
	_, _ = d.Write([]byte{0xff})
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Cost))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(c.Action)
	for _, n := range c.Trajectory {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(n.ID())
	}
	return d.Sum64()
}

type candidateHeap []Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = Candidate{}
	*h = old[:n-1]
	return c
}

// Frontier is the priority queue of candidates. It rejects exact duplicate
// tuples and, when a cap is set, keeps only the Cap best entries.
type Frontier struct {
	Cap int

	items   candidateHeap
	members map[uint64]struct{}
	seq     uint64
	dropped int
}

// NewFrontier returns an empty frontier. A cap of 0 means unlimited.
func NewFrontier(limit int) *Frontier {
	return &Frontier{
		Cap:     limit,
		members: make(map[uint64]struct{}),
	}
}

// Len returns the number of queued candidates.
func (f *Frontier) Len() int {
	return len(f.items)
}

// Dropped returns how many candidates were discarded by the cap so far.
func (f *Frontier) Dropped() int {
	return f.dropped
}

// Push enqueues c unless the identical tuple is already queued. It reports
// whether c is still in the frontier once the cap has been enforced.
func (f *Frontier) Push(c Candidate) bool {
	c.fp = c.fingerprint()
	if _, dup := f.members[c.fp]; dup {
		return false
	}
	f.seq++
	c.seq = f.seq
	heap.Push(&f.items, c)
	f.members[c.fp] = struct{}{}

	kept := true
	for f.Cap > 0 && len(f.items) > f.Cap {
		worst := f.worst()
		if f.items[worst].seq == c.seq {
			kept = false
		}
		removed := heap.Remove(&f.items, worst).(Candidate)
		delete(f.members, removed.fp)
		f.dropped++
	}
	return kept
}

// Pop removes and returns the lowest-priority candidate.
func (f *Frontier) Pop() (Candidate, bool) {
	if len(f.items) == 0 {
		return Candidate{}, false
	}
	c := heap.Pop(&f.items).(Candidate)
	delete(f.members, c.fp)
	return c, true
}

// Peek returns the next candidate without removing it.
func (f *Frontier) Peek() (Candidate, bool) {
	if len(f.items) == 0 {
		return Candidate{}, false
	}
	return f.items[0], true
}

// Candidates returns the queued entries in pop order. It is meant for inspection.
func (f *Frontier) Candidates() []Candidate {
	out := make([]Candidate, len(f.items))
	copy(out, f.items)
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// worst finds the entry that would pop last. In a binary min-heap it is one of the leaves.
func (f *Frontier) worst() int {
	n := len(f.items)
	idx := n / 2
	for i := idx + 1; i < n; i++ {
		if f.items[idx].less(f.items[i]) {
			idx = i
		}
	}
	return idx
}
