package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/object-runtime/object"
	"github.com/wippyai/object-runtime/registry"
)

// InitFunc initializes a freshly constructed instance. Its return value
// replaces the instance as the construction result, so an initializer can
// substitute any value, not just the instance it received.
type InitFunc func(self *object.Instance) any

// ObjectConfig bundles the constructor's ingredients for call sites that
// prefer naming them.
type ObjectConfig struct {
	// Shared is the capability set the object delegates to. Nil means a
	// fresh empty set. The set is used by reference and blessed with the
	// runtime's current plugins.
	Shared *object.CapabilitySet

	// Properties are copied onto the object as own properties.
	Properties object.Properties

	// Init runs with the new instance as receiver. Nil behaves as the
	// identity function.
	Init InitFunc
}

// Runtime owns a plugin registry and hands out constructed objects and
// factories. The zero value is not usable; create runtimes with New.
type Runtime struct {
	plugins *registry.Registry
}

// Option configures a Runtime. Options apply in order.
type Option func(*Runtime)

// WithRegistry uses reg for plugin state instead of a fresh registry,
// letting several runtimes share one plugin table.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runtime) {
		r.plugins = reg
	}
}

// WithPlugins registers plugins during construction.
func WithPlugins(plugins object.Properties) Option {
	return func(r *Runtime) {
		if r.plugins == nil {
			r.plugins = registry.New()
		}
		r.plugins.Register(plugins)
	}
}

// New creates a runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	// Default registry if not provided
	if r.plugins == nil {
		r.plugins = registry.New()
	}
	return r
}

// Registry returns the runtime's plugin registry.
func (r *Runtime) Registry() *registry.Registry {
	return r.plugins
}

// RegisterPlugins merges plugins into the runtime's registry. Capability
// sets blessed earlier are not updated until they are blessed again.
func (r *Runtime) RegisterPlugins(plugins object.Properties) {
	r.plugins.Register(plugins)
	Logger().Debug("plugins registered",
		zap.Int("count", len(plugins)),
		zap.Int("total", r.plugins.Len()))
}

// newObject builds a blessed instance carrying props as own properties.
func (r *Runtime) newObject(shared *object.CapabilitySet, props object.Properties) *object.Instance {
	caps := r.plugins.Bless(shared)
	inst := object.NewInstance(caps)
	object.Merge(inst, props)
	return inst
}

// Construct builds an object from shared behavior, instance properties and
// an optional initializer. The shared set is used by reference, blessed
// with the runtime's current plugins, and nil selects a fresh set. The
// result is the initializer's return value; without an initializer it is
// the *object.Instance itself.
func (r *Runtime) Construct(shared *object.CapabilitySet, props object.Properties, init InitFunc) any {
	return r.ConstructWithConfig(ObjectConfig{
		Shared:     shared,
		Properties: props,
		Init:       init,
	})
}

// ConstructWithConfig is Construct with named ingredients.
func (r *Runtime) ConstructWithConfig(cfg ObjectConfig) any {
	inst := r.newObject(cfg.Shared, cfg.Properties)
	Logger().Debug("object constructed",
		zap.Int("own", len(cfg.Properties)),
		zap.Int("capabilities", inst.Capabilities().Len()))

	if cfg.Init == nil {
		return inst
	}
	return cfg.Init(inst)
}
