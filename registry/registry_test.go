package registry

import (
	"sync"
	"testing"

	"github.com/wippyai/object-runtime/object"
)

func TestRegistry_RegisterAndBless(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{
		"vin":    "unknown",
		"wheels": 4,
	})

	caps := reg.Bless(object.NewCapabilitySet())

	val, ok := caps.Get("vin")
	if !ok || val != "unknown" {
		t.Fatalf("Blessed set missing plugin, got %v (ok=%v)", val, ok)
	}
	if caps.Len() != 2 {
		t.Fatalf("Expected 2 capabilities, got %d", caps.Len())
	}
}

func TestRegistry_BlessTiming(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{"early": 1})

	// Bless before the second plugin is registered
	caps := reg.Bless(object.NewCapabilitySet())
	reg.Register(object.Properties{"late": 2})

	if _, ok := caps.Get("late"); ok {
		t.Fatal("Plugin registered after blessing should not appear")
	}

	// Bless again to pick it up
	reg.Bless(caps)
	if _, ok := caps.Get("late"); !ok {
		t.Fatal("Re-blessing should apply the new plugin")
	}
	if _, ok := caps.Get("early"); !ok {
		t.Fatal("Re-blessing should keep existing plugins")
	}
}

func TestRegistry_RegisterOverwrite(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{"x": 1})
	reg.Register(object.Properties{"x": 2})

	val, _ := reg.Get("x")
	if val != 2 {
		t.Fatalf("Later registration should win, got %v", val)
	}
	if reg.Len() != 1 {
		t.Fatalf("Expected 1 plugin, got %d", reg.Len())
	}
}

func TestRegistry_RegisterNil(t *testing.T) {
	reg := New()
	reg.Register(nil)
	if reg.Len() != 0 {
		t.Fatal("Registering nil should be a no-op")
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{"a": 1})

	snap := reg.Snapshot()
	snap["a"] = 99
	snap["b"] = 2

	val, _ := reg.Get("a")
	if val != 1 {
		t.Fatalf("Mutating snapshot should not affect registry, got %v", val)
	}
	if _, ok := reg.Get("b"); ok {
		t.Fatal("Snapshot additions should not reach the registry")
	}
}

func TestRegistry_BlessNil(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{"a": 1})

	caps := reg.Bless(nil)
	if caps == nil {
		t.Fatal("Bless(nil) should allocate a set")
	}
	if _, ok := caps.Get("a"); !ok {
		t.Fatal("Bless(nil) should apply the snapshot")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := New()
	reg.Register(object.Properties{"b": 1, "a": 2, "c": 3})

	names := reg.Names()
	if len(names) != 3 {
		t.Fatalf("Expected 3 names, got %d", len(names))
	}
	for i, want := range []string{"a", "b", "c"} {
		if names[i] != want {
			t.Fatalf("Names not sorted: got %v", names)
		}
	}
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	reg := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			reg.Register(object.Properties{"shared": n})
			_ = reg.Snapshot()
			_ = reg.Len()
		}(i)
	}
	wg.Wait()

	if _, ok := reg.Get("shared"); !ok {
		t.Fatal("Expected plugin to survive concurrent registration")
	}
}
