package object

import "sort"

// Event types for capability lifecycle notifications.
type EventType uint8

const (
	EventInstalled EventType = iota
	EventReplaced
)

// Event represents a capability lifecycle event.
type Event struct {
	Value any
	Name  string
	Type  EventType
}

// Observer receives notifications about capability lifecycle events.
type Observer interface {
	OnCapabilityEvent(Event)
}

// CapabilitySet is the mutable table of shared behavior a family of
// instances delegates to. Mutations are immediately visible to every
// delegating instance.
type CapabilitySet struct {
	entries   map[string]any
	observers []Observer
}

// NewCapabilitySet creates an empty capability set.
func NewCapabilitySet() *CapabilitySet {
	return &CapabilitySet{
		entries: make(map[string]any),
	}
}

// Get returns the capability stored under name.
func (c *CapabilitySet) Get(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries[name]
	return v, ok
}

// Set installs value under name, overwriting any existing capability.
func (c *CapabilitySet) Set(name string, value any) {
	_, replaced := c.entries[name]
	c.entries[name] = value

	typ := EventInstalled
	if replaced {
		typ = EventReplaced
	}
	c.notify(Event{
		Type:  typ,
		Name:  name,
		Value: value,
	})
}

// Share installs value under name. It is the same operation as Set, named
// for call sites that advertise behavior to all delegating instances.
func (c *CapabilitySet) Share(name string, value any) {
	c.Set(name, value)
}

// Keys returns all capability names in sorted order.
func (c *CapabilitySet) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of capabilities.
func (c *CapabilitySet) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Each iterates over all capabilities in unspecified order. Iteration stops
// early when fn returns false.
func (c *CapabilitySet) Each(fn func(name string, value any) bool) {
	if c == nil {
		return
	}
	for k, v := range c.entries {
		if !fn(k, v) {
			return
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (c *CapabilitySet) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Unsubscribe removes an observer.
func (c *CapabilitySet) Unsubscribe(o Observer) {
	for i, obs := range c.observers {
		if obs == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

func (c *CapabilitySet) notify(e Event) {
	for _, o := range c.observers {
		o.OnCapabilityEvent(e)
	}
}
