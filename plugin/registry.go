// Package plugin resolves configured component names into live component
// factories. Components register themselves by name in an init function;
// resolution happens exactly once at startup, and an unknown name aborts
// the process before it accepts traffic.
package plugin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a name-to-value table for one pluggable role. Registration
// happens from init functions; the lock also covers tests that register
// fixtures at runtime.
type Registry[T any] struct {
	role    string
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry creates an empty registry for the named role.
func NewRegistry[T any](role string) *Registry[T] {
	return &Registry[T]{
		role:    role,
		entries: make(map[string]T),
	}
}

// Register makes value resolvable under name. Registering the same name
// twice panics: two components claiming one name is a programming error
// that must not survive to runtime.
func (r *Registry[T]) Register(name string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[name]; dup {
		panic(fmt.Sprintf("plugin: %s %q registered twice", r.role, name))
	}
	r.entries[name] = value
}

// Lookup resolves name. An unknown name is a fatal startup condition; the
// error names the role, the offending value and the registered
// alternatives.
func (r *Registry[T]) Lookup(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q (registered: %s)", r.role, name, strings.Join(r.names(), ", "))
	}
	return v, nil
}

// names returns the registered names sorted; callers must hold the lock.
func (r *Registry[T]) names() []string {
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
