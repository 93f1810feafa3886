// Package object implements the delegation core: capability sets, instances,
// and the merge primitive.
//
// # Capability Sets
//
// A CapabilitySet is a mutable table of named behavior shared by a family of
// instances. Installing an entry makes it visible to every instance that
// delegates to the set, no matter when the instance was created:
//
//	caps := object.NewCapabilitySet()
//	a := object.NewInstance(caps)
//	caps.Set("greet", greetMethod)
//	// a can call "greet" even though it was created first
//
// # Instances and Delegation
//
// An Instance pairs its own properties with a non-owning reference to a
// CapabilitySet. Lookup walks own properties first, then the set, so own
// properties shadow capabilities of the same name. Instance.Set always
// writes to the instance itself; Instance.Share writes to the set:
//
//	a.Set("color", "red")    // visible only to a
//	a.Share("wheels", 4)     // visible to every sibling of a
//
// # Methods
//
// Capabilities holding a Method can be invoked through Instance.Call, which
// passes the instance as the receiver:
//
//	out, err := a.Call(ctx, "greet", "world")
//
// # Merging
//
// Merge copies entries between property holders. Enumerating an Instance
// yields its own properties and the unshadowed entries of its capability
// set, so merging from an instance captures everything reachable through
// delegation:
//
//	flat := object.Merge(object.Properties{}, a)
//
// # Observers
//
// CapabilitySet supports lifecycle observers that are notified when
// capabilities are installed or replaced. Blessing and Share both route
// through Set, so observers see every mutation of the shared layer.
//
// # Thread Safety
//
// CapabilitySet and Instance are NOT thread-safe. Use them from a single
// goroutine, or synchronize access externally.
package object
