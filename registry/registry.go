package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/wippyai/object-runtime/errors"
	"github.com/wippyai/object-runtime/object"
)

// Registry is a concurrency-safe table of named plugin capabilities.
// Capability sets receive its current contents through Bless.
type Registry struct {
	entries map[string]any
	mu      sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]any),
	}
}

// Register merges plugins into the registry, overwriting entries that
// already exist. A nil mapping is a no-op. Sets blessed earlier are not
// updated; bless them again to pick up the new plugins.
func (r *Registry) Register(plugins object.Properties) {
	if len(plugins) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, value := range plugins {
		r.entries[name] = value
	}
}

// RegisterFunc adapts fn through AsMethod and registers it under name.
func (r *Registry) RegisterFunc(name string, fn any) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegistry, "plugin name cannot be empty")
	}

	method, err := AsMethod(fn)
	if err != nil {
		return errors.Registration(name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = method
	return nil
}

// RegisterMethods registers every exported method of recv under its
// lowerCamel name with prefix prepended. CheckOil on recv becomes
// prefix + "checkOil".
func (r *Registry) RegisterMethods(prefix string, recv any) error {
	rv := reflect.ValueOf(recv)
	rt := rv.Type()

	adapted := make(map[string]object.Method)
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !m.IsExported() {
			continue
		}

		name := prefix + toLowerCamel(m.Name)
		method, err := AsMethod(rv.Method(i).Interface())
		if err != nil {
			return errors.Registration(name, err)
		}
		adapted[name] = method
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, method := range adapted {
		r.entries[name] = method
	}
	return nil
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[name]
	return v, ok
}

// Names returns all registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of the current registry contents. Mutating the
// copy does not affect the registry.
func (r *Registry) Snapshot() object.Properties {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(object.Properties, len(r.entries))
	for name, value := range r.entries {
		out[name] = value
	}
	return out
}

// Bless copies the registry's current snapshot into caps and returns it.
// A nil caps gets a fresh empty set. Blessing is idempotent: repeating it
// with an unchanged registry leaves caps unchanged.
func (r *Registry) Bless(caps *object.CapabilitySet) *object.CapabilitySet {
	if caps == nil {
		caps = object.NewCapabilitySet()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, value := range r.entries {
		caps.Set(name, value)
	}
	return caps
}
