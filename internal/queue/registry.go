package queue

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/midani-47/Message-Queues/internal/message"
)

// Registry is the single source of truth for queue existence. It exclusively
// owns all State instances; callers hold a *State only for the duration of
// one operation.
type Registry struct {
	mu     sync.RWMutex
	queues map[string]*State
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{queues: make(map[string]*State)}
}

// ValidName reports whether name is non-empty ASCII alphanumeric.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case '0' <= r && r <= '9':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

// Create registers an empty queue under name.
func (r *Registry) Create(name string, cfg Config) (Info, error) {
	if !ValidName(name) {
		return Info{}, fmt.Errorf("%w: %q must be non-empty and alphanumeric", ErrInvalidName, name)
	}
	if err := cfg.Validate(); err != nil {
		return Info{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queues[name]; ok {
		return Info{}, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	st := NewState(name, cfg)
	r.queues[name] = st
	info, _ := st.Info()
	return info, nil
}

// Delete detaches the queue from the registry and tombstones its state. The
// state guard is acquired while the registry lock is still held, so removal
// is atomic with respect to lookups; an in-flight push or pull either
// completed against the old state or will observe ErrNotFound.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	st, ok := r.queues[name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	st.mu.Lock()
	delete(r.queues, name)
	r.mu.Unlock()
	st.deleted = true
	st.messages = nil
	st.mu.Unlock()
	return nil
}

// Get returns the live state for name.
func (r *Registry) Get(name string) (*State, error) {
	r.mu.RLock()
	st, ok := r.queues[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return st, nil
}

// Info returns a read-only snapshot for name.
func (r *Registry) Info(name string) (Info, error) {
	st, err := r.Get(name)
	if err != nil {
		return Info{}, err
	}
	return st.Info()
}

// List returns a point-in-time snapshot of all queues, sorted by name. Each
// entry is internally consistent; the set may be stale relative to
// concurrent creates and deletes.
func (r *Registry) List() []Info {
	states := r.States()
	infos := make([]Info, 0, len(states))
	for _, st := range states {
		if info, err := st.Info(); err == nil {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// States returns the current set of live states. The persistence layer
// iterates this without holding the registry lock during I/O.
func (r *Registry) States() []*State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	states := make([]*State, 0, len(r.queues))
	for _, st := range r.queues {
		states = append(states, st)
	}
	return states
}

// Len returns the number of registered queues.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queues)
}

// Restore installs a recovered queue without creation-time validation. Used
// only during startup recovery, before the registry serves traffic.
func (r *Registry) Restore(name string, cfg Config, msgs []message.Message, createdAt, lastModified time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queues[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	r.queues[name] = RestoreState(name, cfg, msgs, createdAt, lastModified)
	return nil
}
