package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	rterrors "github.com/wippyai/object-runtime/errors"
)

const sampleYAML = `
name: vehicle-pack
version: 1.2.0
requires: ">= 0.3"
plugins:
  - name: maxSpeed
    value: 120
  - name: motto
    value: drive safely
  - name: describe
    wasm:
      path: plugins/vehicle.wasm
  - name: slower
    wasm:
      path: plugins/vehicle.wasm
      export: reduceSpeed
`

func TestParse_Valid(t *testing.T) {
	m, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if m.Name != "vehicle-pack" {
		t.Errorf("expected name vehicle-pack, got %q", m.Name)
	}
	if m.Version != "1.2.0" || m.Requires != ">= 0.3" {
		t.Errorf("unexpected version fields: %q %q", m.Version, m.Requires)
	}
	if len(m.Plugins) != 4 {
		t.Fatalf("expected 4 plugins, got %d", len(m.Plugins))
	}

	if got := fmt.Sprint(m.Plugins[0].Value); got != "120" {
		t.Errorf("expected maxSpeed 120, got %s", got)
	}
	if m.Plugins[1].Value != "drive safely" {
		t.Errorf("expected motto string, got %v", m.Plugins[1].Value)
	}
	if m.Plugins[2].Wasm == nil || m.Plugins[2].Wasm.Path != "plugins/vehicle.wasm" {
		t.Fatalf("unexpected wasm ref: %+v", m.Plugins[2].Wasm)
	}
	if m.Plugins[2].Wasm.Export != "" {
		t.Errorf("expected default export, got %q", m.Plugins[2].Wasm.Export)
	}
	if m.Plugins[3].Wasm.Export != "reduceSpeed" {
		t.Errorf("expected explicit export, got %q", m.Plugins[3].Wasm.Export)
	}
}

func TestParse_NestedValue(t *testing.T) {
	m, err := Parse([]byte(`
name: pack
plugins:
  - name: limits
    value:
      speed: 120
      unit: kmh
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	limits, ok := m.Plugins[0].Value.(map[string]any)
	if !ok {
		t.Fatalf("expected a string-keyed map, got %T", m.Plugins[0].Value)
	}
	if limits["unit"] != "kmh" {
		t.Errorf("expected unit kmh, got %v", limits["unit"])
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, &rterrors.Error{Phase: rterrors.PhaseManifest, Kind: rterrors.KindInvalidData}) {
		t.Errorf("expected a manifest parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind rterrors.Kind
	}{
		{
			name: "missing name",
			yaml: "plugins:\n  - name: a\n    value: 1\n",
			kind: rterrors.KindFieldMissing,
		},
		{
			name: "bad version",
			yaml: "name: p\nversion: not-a-version\n",
			kind: rterrors.KindInvalidData,
		},
		{
			name: "bad constraint",
			yaml: "name: p\nrequires: \">>= 1\"\n",
			kind: rterrors.KindInvalidData,
		},
		{
			name: "plugin without name",
			yaml: "name: p\nplugins:\n  - value: 1\n",
			kind: rterrors.KindFieldMissing,
		},
		{
			name: "duplicate plugin",
			yaml: "name: p\nplugins:\n  - name: a\n    value: 1\n  - name: a\n    value: 2\n",
			kind: rterrors.KindInvalidData,
		},
		{
			name: "value and wasm",
			yaml: "name: p\nplugins:\n  - name: a\n    value: 1\n    wasm:\n      path: x.wasm\n",
			kind: rterrors.KindInvalidData,
		},
		{
			name: "neither value nor wasm",
			yaml: "name: p\nplugins:\n  - name: a\n",
			kind: rterrors.KindInvalidData,
		},
		{
			name: "wasm without path",
			yaml: "name: p\nplugins:\n  - name: a\n    wasm:\n      export: run\n",
			kind: rterrors.KindFieldMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, &rterrors.Error{Phase: rterrors.PhaseManifest, Kind: tt.kind}) {
				t.Errorf("expected kind %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestManifest_Check(t *testing.T) {
	m := &Manifest{Name: "p", Requires: ">= 0.2, < 1.0"}

	if err := m.Check("0.3.0"); err != nil {
		t.Errorf("expected 0.3.0 to satisfy, got %v", err)
	}

	err := m.Check("1.2.0")
	if !errors.Is(err, &rterrors.Error{Phase: rterrors.PhaseManifest, Kind: rterrors.KindVersionConflict}) {
		t.Errorf("expected a version conflict, got %v", err)
	}
}

func TestManifest_CheckEmptyRequires(t *testing.T) {
	m := &Manifest{Name: "p"}

	if err := m.Check("0.0.1"); err != nil {
		t.Errorf("expected empty requires to pass, got %v", err)
	}
}

func TestManifest_CheckBadHostVersion(t *testing.T) {
	m := &Manifest{Name: "p", Requires: ">= 0.1"}

	if err := m.Check("junk"); err == nil {
		t.Error("expected an error for an unparseable host version")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("name: p\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	write("a/plugin.yaml")
	write("b/nested/plugin.yaml")
	write("b/other.yaml")

	paths, err := Discover(root, "**/plugin.yaml")
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "a/plugin.yaml"),
		filepath.Join(root, "b/nested/plugin.yaml"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.yaml")
	if err := os.WriteFile(path, []byte("name: disk-pack\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Name != "disk-pack" {
		t.Errorf("expected disk-pack, got %q", m.Name)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, &rterrors.Error{Phase: rterrors.PhaseManifest, Kind: rterrors.KindInvalidInput}) {
		t.Fatalf("expected an invalid-input error, got %v", err)
	}
}
