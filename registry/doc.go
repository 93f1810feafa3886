// Package registry implements plugin registries and capability blessing.
//
// A Registry is a concurrency-safe table of named plugin capabilities.
// Plugins are plain values or callable methods that get copied into
// capability sets when those sets are blessed:
//
//	reg := registry.New()
//	reg.Register(object.Properties{"vin": "unknown"})
//	reg.RegisterFunc("checkOil", func(level int) string {
//		return fmt.Sprintf("oil at %d%%", level)
//	})
//
//	caps := reg.Bless(object.NewCapabilitySet())
//
// Blessing applies the registry's current snapshot. Plugins registered
// after a set was blessed do not appear in that set until it is blessed
// again; blessing is idempotent and safe to repeat.
//
// # Function Adaptation
//
// AsMethod adapts ordinary Go functions to the object.Method calling
// convention. Supported shapes include an optional leading context.Context,
// an optional *object.Instance receiver, fixed typed arguments, and up to
// two results where the last may be an error:
//
//	func()                                    // no args, no result
//	func(a, b int) int                        // typed args
//	func(ctx context.Context, s string) error // context-aware
//	func(self *object.Instance) any           // receiver-aware
//
// Arguments are converted with reflection at call time; numeric values
// convert across numeric kinds so JSON-decoded float64 arguments reach
// integer parameters.
//
// RegisterMethods registers every exported method of a struct under its
// lowerCamel name, optionally prefixed:
//
//	reg.RegisterMethods("engine.", &EngineHost{})
//	// EngineHost.CheckOil becomes "engine.checkOil"
//
// # Thread Safety
//
// Registry is safe for concurrent use. The capability sets it blesses
// are not; bless and use them from a single goroutine.
package registry
