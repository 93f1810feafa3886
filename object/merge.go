package object

import (
	objectruntime "github.com/wippyai/object-runtime"
)

// Merge copies every entry of each source into target, left to right, so
// later sources win on name collisions. Sources enumerate through their Each
// method: merging from an Instance therefore captures both its own
// properties and the unshadowed entries of its capability set.
//
// Merge mutates and returns target. Nil sources are skipped.
func Merge[T objectruntime.Store](target T, sources ...objectruntime.Source) T {
	for _, src := range sources {
		if src == nil {
			continue
		}
		src.Each(func(name string, value any) bool {
			target.Set(name, value)
			return true
		})
	}
	return target
}

// Compile-time checks that the core types satisfy the root interfaces
var _ objectruntime.Getter = Properties(nil)
var _ objectruntime.Source = Properties(nil)
var _ objectruntime.Store = Properties(nil)
var _ objectruntime.Getter = (*CapabilitySet)(nil)
var _ objectruntime.Source = (*CapabilitySet)(nil)
var _ objectruntime.Store = (*CapabilitySet)(nil)
var _ objectruntime.Getter = (*Instance)(nil)
var _ objectruntime.Source = (*Instance)(nil)
var _ objectruntime.Store = (*Instance)(nil)
