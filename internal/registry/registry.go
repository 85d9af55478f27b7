package registry

import (
	"sort"
	"sync"
)

// Entry describes one registered service surface.
type Entry struct {
	Name  string `json:"name"`
	Port  int    `json:"port"`
	Alive bool   `json:"alive"`
}

// Registry is a process-local name to port map. It is injected into the
// components that need it rather than held as package state; lifecycle is
// process start to process stop.
type Registry struct {
	mu       sync.RWMutex
	services map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{services: make(map[string]Entry)}
}

// Register records a service under its name, replacing any previous entry.
func (r *Registry) Register(name string, port int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[name] = Entry{Name: name, Port: port, Alive: true}
}

// Lookup returns the entry for name, false when unregistered.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.services[name]
	return entry, ok
}

// List returns all entries sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.services))
	for _, entry := range r.services {
		out = append(out, entry)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
