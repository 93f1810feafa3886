package object

import "sort"

// Properties is a plain collection of named values. It is the currency for
// option maps, defaults, and plugin mappings throughout the library.
//
// A nil Properties is safe to read and enumerate; Set requires an
// initialized map.
type Properties map[string]any

// Get returns the value stored under name.
func (p Properties) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// Set stores value under name, overwriting any existing entry.
func (p Properties) Set(name string, value any) {
	p[name] = value
}

// Each iterates over all entries in unspecified order. Iteration stops
// early when fn returns false.
func (p Properties) Each(fn func(name string, value any) bool) {
	for k, v := range p {
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns all entry names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (p Properties) Len() int {
	return len(p)
}

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
