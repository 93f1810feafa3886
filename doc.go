// Package objectruntime provides a delegation-based object system for Go.
//
// Objects consist of two layers: own properties stored per instance, and a
// shared capability set every instance of a family delegates to. Installing a
// capability on the shared layer makes it visible to all delegating instances
// at once, including instances created before the installation. This mirrors
// prototype-style object composition without class hierarchies.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	objectruntime/       Root package with core property-access interfaces
//	├── object/          Capability sets, instances, delegation and merging
//	├── registry/        Plugin registries and capability blessing
//	├── runtime/         High-level API: constructors, factories, option resolution
//	├── wasmplugin/      WASM-backed plugin methods via wazero
//	├── manifest/        YAML plugin manifests: discovery, checking, installation
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Construct an object with shared behavior:
//
//	rt := runtime.New()
//	rt.RegisterPlugins(object.Properties{
//	    "describe": object.Method(func(ctx context.Context, self *object.Instance, args ...any) (any, error) {
//	        name, _ := self.Get("name")
//	        return fmt.Sprintf("task %v", name), nil
//	    }),
//	})
//
//	task := rt.Construct(nil, object.Properties{"name": "deploy"}, nil).(*object.Instance)
//	out, err := task.Call(ctx, "describe")
//	fmt.Println(out) // "task deploy"
//
// Or stamp out instances from a factory:
//
//	factory := rt.NewFactory(runtime.FactoryConfig{
//	    Defaults: object.Properties{"retries": 3},
//	})
//	a := factory.New(nil)
//	b := factory.New(object.Properties{"retries": 5})
//
// # Delegation Model
//
// Property lookup is a two-level walk: an instance's own properties first,
// then its capability set. Own properties shadow capabilities of the same
// name. Writes through Instance.Set always land on the instance itself, so
// one instance can never clobber behavior shared by its siblings; writes
// through Share land on the capability set and become visible to all of them.
//
// # Plugins
//
// A registry holds named plugin capabilities. Blessing a capability set
// copies the registry's current snapshot into it; plugins registered after a
// set was blessed do not appear in it until it is blessed again. Plugins can
// be plain values, Go functions adapted via registry.AsMethod, or exports of
// a WASM module wrapped by the wasmplugin package and described by YAML
// manifests.
//
// # Thread Safety
//
// Registry is safe for concurrent use. CapabilitySet and Instance are NOT
// thread-safe and should be used by a single goroutine, or access must be
// synchronized externally.
package objectruntime
