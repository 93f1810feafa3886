// Package runtime provides the high-level API for constructing delegation
// objects and factories.
//
// # Quick Start
//
//	rt := runtime.New()
//
//	// Register plugin capabilities every constructed object receives
//	rt.RegisterPlugins(object.Properties{"vin": "unknown"})
//
//	// Construct a one-off object
//	car := rt.Construct(nil, object.Properties{"color": "red"}, nil).(*object.Instance)
//
//	// Or build a factory that stamps out instances
//	factory := rt.NewFactory(runtime.FactoryConfig{
//	    Defaults: object.Properties{"wheels": 4},
//	})
//	coupe := factory.New(object.Properties{"doors": 2})
//
// # Construction
//
// Construct wires three ingredients together: a shared capability set (nil
// means a fresh empty one), instance properties copied onto the new object,
// and an optional initializer whose return value replaces the instance as
// the result. Every construction blesses the capability set with the
// runtime's current plugins first.
//
// # Factories
//
// A factory owns an internal capability set seeded once from
// FactoryConfig.Shared; the caller's set is never mutated. Behavior shared
// from inside FactoryInit, or through Factory.Capabilities, reaches every
// instance the factory has ever produced. Per call, options are resolved
// against Defaults into a fresh map, so neither config nor caller input is
// clobbered.
//
// # Option Resolution
//
// ResolveOptions turns loose argument lists into named options. A leading
// mapping with at least one truthy declared entry selects named mode;
// otherwise values bind positionally:
//
//	runtime.ResolveOptions("make, model", opts)       // named
//	runtime.ResolveOptions("make, model", "BMW", "M3") // positional
//
// # Thread Safety
//
// Runtime is safe for concurrent use; it delegates plugin state to a
// registry.Registry. The objects and factories it produces are NOT
// thread-safe and belong to a single goroutine.
package runtime
