package runtime

import (
	"context"
	"testing"

	"github.com/wippyai/object-runtime/object"
)

func TestNewFactory_CopiesSharedSet(t *testing.T) {
	rt := New()
	shared := object.NewCapabilitySet()
	shared.Set("engine", "v8")

	f := rt.NewFactory(FactoryConfig{Shared: shared})

	if f.Capabilities() == shared {
		t.Fatal("expected the factory to own a copy, not the caller's set")
	}
	if v, ok := f.Capabilities().Get("engine"); !ok || v != "v8" {
		t.Errorf("expected copied engine=v8, got %v (present=%v)", v, ok)
	}

	shared.Set("wheels", 4)
	if _, ok := f.Capabilities().Get("wheels"); ok {
		t.Error("expected later caller changes not to reach the factory")
	}
}

func TestNewFactory_DoesNotMutateSharedSet(t *testing.T) {
	rt := New()
	rt.RegisterPlugins(object.Properties{"audit": true})
	shared := object.NewCapabilitySet()
	shared.Set("engine", "v8")

	f := rt.NewFactory(FactoryConfig{Shared: shared})
	f.New(nil)

	if shared.Len() != 1 {
		t.Fatalf("expected the caller's set to keep 1 entry, got %d", shared.Len())
	}
	if _, ok := shared.Get("audit"); ok {
		t.Error("expected plugins to land on the factory's copy only")
	}
}

func TestFactory_DefaultsAndOptions(t *testing.T) {
	rt := New()
	defaults := object.Properties{"color": "red", "doors": 4}
	f := rt.NewFactory(FactoryConfig{Defaults: defaults})

	options := object.Properties{"color": "blue"}
	inst := f.New(options).(*object.Instance)

	if v, _ := inst.Get("color"); v != "blue" {
		t.Errorf("expected options to win, got %v", v)
	}
	if v, _ := inst.Get("doors"); v != 4 {
		t.Errorf("expected defaults to fill, got %v", v)
	}

	// Resolution happens in a fresh map.
	if defaults["color"] != "red" {
		t.Errorf("expected defaults untouched, got %v", defaults["color"])
	}
	if len(options) != 1 {
		t.Errorf("expected options untouched, got %#v", options)
	}
}

func TestFactory_IgnoreOptions(t *testing.T) {
	rt := New()
	var seen object.Properties
	f := rt.NewFactory(FactoryConfig{
		Defaults:      object.Properties{"mode": "fixed"},
		IgnoreOptions: true,
		InstanceInit: func(self *object.Instance, options object.Properties) any {
			seen = options
			return self
		},
	})

	inst := f.New(object.Properties{"mode": "custom", "extra": 1}).(*object.Instance)

	if v, _ := inst.Get("mode"); v != "fixed" {
		t.Errorf("expected defaults verbatim, got %v", v)
	}
	if _, ok := inst.Get("extra"); ok {
		t.Error("expected options to be ignored for properties")
	}
	if seen["mode"] != "custom" || seen["extra"] != 1 {
		t.Errorf("expected the initializer to see the original options, got %#v", seen)
	}
}

func TestFactory_FactoryInitSharesState(t *testing.T) {
	rt := New()
	count := 0
	f := rt.NewFactory(FactoryConfig{
		FactoryInit: func(self *object.Instance) any {
			self.Share("tick", object.Method(func(ctx context.Context, _ *object.Instance, _ ...any) (any, error) {
				count++
				return count, nil
			}))
			return nil
		},
	})

	a := f.New(nil).(*object.Instance)
	b := f.New(nil).(*object.Instance)

	ctx := context.Background()
	if got, err := a.Call(ctx, "tick"); err != nil || got != 1 {
		t.Fatalf("expected first tick=1, got %v (err=%v)", got, err)
	}
	if got, err := b.Call(ctx, "tick"); err != nil || got != 2 {
		t.Fatalf("expected the counter shared across instances, got %v (err=%v)", got, err)
	}
	if got, err := a.Call(ctx, "tick"); err != nil || got != 3 {
		t.Fatalf("expected third tick=3, got %v (err=%v)", got, err)
	}
}

func TestFactory_FactoryInitRunsOnce(t *testing.T) {
	rt := New()
	runs := 0
	f := rt.NewFactory(FactoryConfig{
		FactoryInit: func(self *object.Instance) any {
			runs++
			return nil
		},
	})

	f.New(nil)
	f.New(nil)

	if runs != 1 {
		t.Fatalf("expected one factory init run, got %d", runs)
	}
}

func TestFactory_InstancesIsolateOwnProperties(t *testing.T) {
	rt := New()
	f := rt.NewFactory(FactoryConfig{})

	a := f.New(object.Properties{"name": "first"}).(*object.Instance)
	b := f.New(object.Properties{"name": "second"}).(*object.Instance)

	a.Set("note", "mine")

	if v, _ := a.Get("name"); v != "first" {
		t.Errorf("expected a to keep its name, got %v", v)
	}
	if v, _ := b.Get("name"); v != "second" {
		t.Errorf("expected b to keep its name, got %v", v)
	}
	if _, ok := b.Get("note"); ok {
		t.Error("expected own note to stay off the sibling")
	}
}

func TestFactory_ShareReachesExistingInstances(t *testing.T) {
	rt := New()
	f := rt.NewFactory(FactoryConfig{})

	a := f.New(nil).(*object.Instance)
	b := f.New(nil).(*object.Instance)

	b.Share("banner", "hello")

	if v, ok := a.Get("banner"); !ok || v != "hello" {
		t.Fatalf("expected the earlier instance to see banner, got %v (present=%v)", v, ok)
	}
}

func TestFactory_CapabilitiesShareReachesInstances(t *testing.T) {
	rt := New()
	f := rt.NewFactory(FactoryConfig{})
	inst := f.New(nil).(*object.Instance)

	f.Capabilities().Share("flag", true)

	if v, ok := inst.Get("flag"); !ok || v != true {
		t.Fatalf("expected flag on the existing instance, got %v (present=%v)", v, ok)
	}
}

func TestFactory_LatePluginsReachNewInstances(t *testing.T) {
	rt := New()
	f := rt.NewFactory(FactoryConfig{})

	before := f.New(nil).(*object.Instance)
	rt.RegisterPlugins(object.Properties{"late": 2})
	after := f.New(nil).(*object.Instance)

	if v, ok := after.Get("late"); !ok || v != 2 {
		t.Fatalf("expected the late plugin on the new instance, got %v (present=%v)", v, ok)
	}
	// All instances of one factory share its set, so the refresh reaches
	// earlier instances as well.
	if _, ok := before.Get("late"); !ok {
		t.Error("expected the refreshed set to reach the earlier instance")
	}
}

func TestFactory_InstanceInitResultReplacesInstance(t *testing.T) {
	rt := New()
	type car struct{ color string }
	f := rt.NewFactory(FactoryConfig{
		Defaults: object.Properties{"color": "red"},
		InstanceInit: func(self *object.Instance, options object.Properties) any {
			v, _ := self.Get("color")
			return &car{color: v.(string)}
		},
	})

	got := f.New(object.Properties{"color": "green"})

	c, ok := got.(*car)
	if !ok {
		t.Fatalf("expected *car, got %T", got)
	}
	if c.color != "green" {
		t.Errorf("expected green, got %s", c.color)
	}
}
