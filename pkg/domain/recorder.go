package domain

import "sync"

// PathRecorder collects the nodes of winning paths. Pass Record as a
// backtrack callback; every solved run appends its nodes root first.
type PathRecorder struct {
	mu   sync.Mutex
	path Path
}

// Record appends n. It never fails.
func (r *PathRecorder) Record(n Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = append(r.path, n)
	return nil
}

// Path returns a copy of the recorded nodes.
func (r *PathRecorder) Path() Path {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(Path, len(r.path))
	copy(out, r.path)
	return out
}

// Reset forgets every recorded node.
func (r *PathRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = nil
}
