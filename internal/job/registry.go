package job

import (
	"sync"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Registry is the shared job store: safe for concurrent read/insert/update,
// with a per-job advance token so at most one advance runs per job at a time.
// Jobs never share state; the registry lock only guards the map and the
// committed fields read by snapshots.
type Registry struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	tokens map[string]chan struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs:   make(map[string]*Job),
		tokens: make(map[string]chan struct{}),
	}
}

// Add inserts a new job and allocates its advance token.
func (r *Registry) Add(j *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[j.ID] = j
	token := make(chan struct{}, 1)
	token <- struct{}{}
	r.tokens[j.ID] = token
}

// Snapshot returns the last-committed view of a job. It never blocks behind
// an in-flight advance.
func (r *Registry) Snapshot(id string) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return Snapshot{}, recap.ErrJobNotFound
	}
	return j.Snapshot(), nil
}

// List returns snapshots of all jobs.
func (r *Registry) List() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Snapshot, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j.Snapshot())
	}
	return out
}

// View runs fn with read access to the job. fn must not retain the pointer.
func (r *Registry) View(id string, fn func(*Job)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return recap.ErrJobNotFound
	}
	fn(j)
	return nil
}

// Update runs fn with exclusive access to the job; committed changes become
// visible to snapshots atomically.
func (r *Registry) Update(id string, fn func(*Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return recap.ErrJobNotFound
	}
	fn(j)
	return nil
}

// TryAcquire claims the job's advance token without blocking. Callers must
// Release after the stage commits or fails.
func (r *Registry) TryAcquire(id string) error {
	r.mu.RLock()
	token, ok := r.tokens[id]
	r.mu.RUnlock()

	if !ok {
		return recap.ErrJobNotFound
	}

	select {
	case <-token:
		return nil
	default:
		return recap.ErrJobBusy
	}
}

// Release returns the advance token.
func (r *Registry) Release(id string) {
	r.mu.RLock()
	token, ok := r.tokens[id]
	r.mu.RUnlock()

	if ok {
		select {
		case token <- struct{}{}:
		default:
		}
	}
}
