package objectruntime

// Getter reads a single entry by name. The second result reports whether the
// entry exists, so a stored nil value is distinguishable from a missing one.
type Getter interface {
	Get(name string) (any, bool)
}

// Source enumerates name/value entries. Enumeration stops early when fn
// returns false. Implementations define their own entry order and whether
// delegated entries are included.
type Source interface {
	Each(fn func(name string, value any) bool)
}

// Store accepts entries by name, overwriting any existing value.
type Store interface {
	Set(name string, value any)
}
