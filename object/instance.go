package object

import (
	"context"
	"fmt"
	"sort"

	"github.com/wippyai/object-runtime/errors"
)

// Method is the signature for callable capabilities. The instance the call
// was dispatched through is passed as self, so shared methods can read and
// write per-instance state.
type Method func(ctx context.Context, self *Instance, args ...any) (any, error)

// Instance pairs own properties with a non-owning reference to a shared
// CapabilitySet. Property lookup walks own properties first, then the set.
type Instance struct {
	own  Properties
	caps *CapabilitySet
}

// NewInstance creates an instance delegating to caps. A nil caps gets a
// fresh empty set.
func NewInstance(caps *CapabilitySet) *Instance {
	if caps == nil {
		caps = NewCapabilitySet()
	}
	return &Instance{
		own:  Properties{},
		caps: caps,
	}
}

// Get returns the value visible under name: the instance's own property if
// present, otherwise the capability set's entry.
func (in *Instance) Get(name string) (any, bool) {
	if v, ok := in.own[name]; ok {
		return v, true
	}
	return in.caps.Get(name)
}

// Set stores value as an own property. Own properties shadow capabilities
// of the same name and are never visible to sibling instances.
func (in *Instance) Set(name string, value any) {
	in.own[name] = value
}

// Share installs value on the capability set, making it visible to every
// instance delegating to the same set.
func (in *Instance) Share(name string, value any) {
	in.caps.Set(name, value)
}

// Capabilities returns the capability set this instance delegates to.
func (in *Instance) Capabilities() *CapabilitySet {
	return in.caps
}

// HasOwn reports whether name is an own property, ignoring the
// capability set.
func (in *Instance) HasOwn(name string) bool {
	_, ok := in.own[name]
	return ok
}

// OwnKeys returns the instance's own property names in sorted order.
// Delegated capabilities are not included.
func (in *Instance) OwnKeys() []string {
	keys := make([]string, 0, len(in.own))
	for k := range in.own {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each iterates over everything visible on the instance: own properties
// first, then capability entries not shadowed by an own property. Iteration
// stops early when fn returns false.
func (in *Instance) Each(fn func(name string, value any) bool) {
	if in == nil {
		return
	}
	for k, v := range in.own {
		if !fn(k, v) {
			return
		}
	}
	in.caps.Each(func(name string, value any) bool {
		if _, shadowed := in.own[name]; shadowed {
			return true
		}
		return fn(name, value)
	})
}

// Call invokes the capability stored under name with the instance as
// receiver. It returns a not_found error when nothing is visible under
// name, and a not_callable error when the visible value is not a Method.
func (in *Instance) Call(ctx context.Context, name string, args ...any) (any, error) {
	val, ok := in.Get(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "capability", name)
	}

	switch fn := val.(type) {
	case Method:
		return fn(ctx, in, args...)
	case func(context.Context, *Instance, ...any) (any, error):
		return fn(ctx, in, args...)
	}
	return nil, errors.NotCallable([]string{name}, fmt.Sprintf("%T", val))
}
