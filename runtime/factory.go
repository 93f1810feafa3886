package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/object-runtime/object"
)

// InstanceInitFunc initializes each instance a factory produces. It
// receives the original options passed to Factory.New, even when the
// factory ignores options for property resolution. Its return value
// replaces the instance as the factory result.
type InstanceInitFunc func(self *object.Instance, options object.Properties) any

// FactoryConfig describes a factory.
type FactoryConfig struct {
	// Shared seeds the factory's capability set. It is copied once at
	// factory creation; the caller's set is never mutated and later
	// changes to it do not reach the factory.
	Shared *object.CapabilitySet

	// Defaults are merged under the options of every New call.
	Defaults object.Properties

	// InstanceInit runs for each produced instance.
	InstanceInit InstanceInitFunc

	// FactoryInit runs once at factory creation with a factory-scoped
	// instance as receiver. Behavior shared through that instance
	// reaches every instance the factory later produces. Its return
	// value is ignored.
	FactoryInit InitFunc

	// IgnoreOptions makes New pass Defaults through untouched, skipping
	// option resolution entirely.
	IgnoreOptions bool
}

// Factory stamps out instances that all delegate to one capability set
// owned by the factory.
type Factory struct {
	rt     *Runtime
	cfg    FactoryConfig
	caps   *object.CapabilitySet
	scoped *object.Instance
}

// NewFactory creates a factory from cfg. The factory's capability set
// starts as a copy of cfg.Shared, blessed with the runtime's current
// plugins. FactoryInit, when set, runs here exactly once.
func (r *Runtime) NewFactory(cfg FactoryConfig) *Factory {
	caps := object.NewCapabilitySet()
	if cfg.Shared != nil {
		object.Merge(caps, cfg.Shared)
	}
	r.plugins.Bless(caps)

	scoped := r.newObject(nil, nil)
	if cfg.FactoryInit != nil {
		cfg.FactoryInit(scoped)
	}

	Logger().Debug("factory created",
		zap.Int("defaults", len(cfg.Defaults)),
		zap.Bool("ignore_options", cfg.IgnoreOptions))

	return &Factory{
		rt:     r,
		cfg:    cfg,
		caps:   caps,
		scoped: scoped,
	}
}

// New constructs an instance. Defaults and options are resolved into a
// fresh map, later values winning; with IgnoreOptions set, Defaults pass
// through verbatim. The result is InstanceInit's return value; without an
// InstanceInit it is the *object.Instance itself.
func (f *Factory) New(options object.Properties) any {
	props := f.cfg.Defaults
	if !f.cfg.IgnoreOptions {
		props = object.Merge(object.Properties{}, f.cfg.Defaults, options)
	}

	// Behavior shared through the factory-scoped instance propagates to
	// the factory's set before the instance is built.
	object.Merge(f.caps, f.scoped)

	inst := f.rt.newObject(f.caps, props)
	if f.cfg.InstanceInit != nil {
		return f.cfg.InstanceInit(inst, options)
	}
	return inst
}

// Capabilities returns the factory's capability set. Entries installed on
// it become visible to every instance the factory has produced.
func (f *Factory) Capabilities() *object.CapabilitySet {
	return f.caps
}
