package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"

	"github.com/wippyai/object-runtime/errors"
)

// Manifest describes one plugin pack.
type Manifest struct {
	Name     string   `yaml:"name"`
	Version  string   `yaml:"version"`
	Requires string   `yaml:"requires"`
	Plugins  []Plugin `yaml:"plugins"`
}

// Plugin is one registry entry. Exactly one of Value and Wasm must be set.
type Plugin struct {
	Value any      `yaml:"value"`
	Wasm  *WasmRef `yaml:"wasm"`
	Name  string   `yaml:"name"`
}

// WasmRef points at an export of a WASM module. An empty Export means the
// plugin name.
type WasmRef struct {
	Path   string `yaml:"path"`
	Export string `yaml:"export"`
}

// Parse decodes a manifest from YAML and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseManifest, errors.KindInvalidInput, err, "read "+path)
	}
	return Parse(data)
}

// Validate checks structural requirements: a manifest name, parseable
// version and requires fields, unique plugin names and exactly one source
// per plugin.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.FieldMissing(errors.PhaseManifest, nil, "name")
	}
	if m.Version != "" {
		if _, err := semver.NewVersion(m.Version); err != nil {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Path("version").
				Cause(err).
				Detail("parse version %q", m.Version).
				Build()
		}
	}
	if m.Requires != "" {
		if _, err := semver.NewConstraint(m.Requires); err != nil {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Path("requires").
				Cause(err).
				Detail("parse constraint %q", m.Requires).
				Build()
		}
	}

	seen := make(map[string]bool, len(m.Plugins))
	for i, p := range m.Plugins {
		pos := fmt.Sprintf("plugins[%d]", i)
		if p.Name == "" {
			return errors.FieldMissing(errors.PhaseManifest, []string{pos}, "name")
		}
		if seen[p.Name] {
			return errors.InvalidData(errors.PhaseManifest, []string{pos, p.Name}, "duplicate plugin name")
		}
		seen[p.Name] = true

		if (p.Value != nil) == (p.Wasm != nil) {
			return errors.InvalidData(errors.PhaseManifest, []string{pos, p.Name}, "exactly one of value or wasm required")
		}
		if p.Wasm != nil && p.Wasm.Path == "" {
			return errors.FieldMissing(errors.PhaseManifest, []string{pos, p.Name, "wasm"}, "path")
		}
	}
	return nil
}

// Check verifies the requires constraint against hostVersion. An empty
// requires field always passes.
func (m *Manifest) Check(hostVersion string) error {
	if m.Requires == "" {
		return nil
	}

	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return errors.New(errors.PhaseManifest, errors.KindInvalidData).
			Path("requires").
			Cause(err).
			Detail("parse constraint %q", m.Requires).
			Build()
	}
	v, err := semver.NewVersion(hostVersion)
	if err != nil {
		return errors.New(errors.PhaseManifest, errors.KindInvalidInput).
			Cause(err).
			Detail("parse host version %q", hostVersion).
			Build()
	}

	if !c.Check(v) {
		return errors.VersionConflict(m.Name, m.Requires, hostVersion)
	}
	return nil
}

// Discover finds manifest files under root matching pattern. Patterns use
// doublestar syntax, so "**/plugin.yaml" walks the whole tree. Paths come
// back sorted with root joined in.
func Discover(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, errors.New(errors.PhaseManifest, errors.KindInvalidInput).
			Cause(err).
			Detail("glob %q", pattern).
			Build()
	}

	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, match := range matches {
		paths[i] = filepath.Join(root, match)
	}
	return paths, nil
}
