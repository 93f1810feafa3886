package manifest

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	objectruntime "github.com/wippyai/object-runtime"
	"github.com/wippyai/object-runtime/errors"
	"github.com/wippyai/object-runtime/object"
	"github.com/wippyai/object-runtime/registry"
	"github.com/wippyai/object-runtime/wasmplugin"
)

type installConfig struct {
	baseDir     string
	hostVersion string
	moduleOpts  []wasmplugin.Option
}

// InstallOption configures an install.
type InstallOption func(*installConfig)

// WithBaseDir resolves relative WASM paths against dir. Defaults to the
// working directory, or the manifest's directory for InstallFile.
func WithBaseDir(dir string) InstallOption {
	return func(c *installConfig) {
		c.baseDir = dir
	}
}

// WithHostVersion overrides the version checked against the manifest's
// requires field. Defaults to the library version.
func WithHostVersion(v string) InstallOption {
	return func(c *installConfig) {
		c.hostVersion = v
	}
}

// WithModuleOptions passes opts to every WASM module load.
func WithModuleOptions(opts ...wasmplugin.Option) InstallOption {
	return func(c *installConfig) {
		c.moduleOpts = opts
	}
}

// Installed tracks what an install produced and owns the loaded modules.
type Installed struct {
	// Names lists the registered plugin names, sorted.
	Names []string

	modules []*wasmplugin.Module
}

// Modules returns the WASM modules the install loaded.
func (ins *Installed) Modules() []*wasmplugin.Module {
	return ins.modules
}

// Close releases every WASM module the install loaded. The registered
// methods bound to them stop working.
func (ins *Installed) Close(ctx context.Context) error {
	var firstErr error
	for _, m := range ins.modules {
		if err := m.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Install checks the manifest against the host version, loads its WASM
// modules and registers every plugin with reg. Static values register
// as-is; WASM entries register the referenced export as a method. Each
// WASM file loads once no matter how many exports it contributes.
func Install(ctx context.Context, m *Manifest, reg *registry.Registry, opts ...InstallOption) (*Installed, error) {
	cfg := installConfig{
		baseDir:     ".",
		hostVersion: objectruntime.Version,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := m.Check(cfg.hostVersion); err != nil {
		return nil, err
	}

	ins := &Installed{}
	modules := make(map[string]*wasmplugin.Module)
	plugins := make(object.Properties, len(m.Plugins))

	for _, p := range m.Plugins {
		if p.Wasm == nil {
			plugins[p.Name] = p.Value
			continue
		}

		path := p.Wasm.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.baseDir, path)
		}

		mod, ok := modules[path]
		if !ok {
			data, err := os.ReadFile(path)
			if err != nil {
				_ = ins.Close(ctx)
				return nil, errors.Load("read "+path, err)
			}
			mod, err = wasmplugin.Load(ctx, data, cfg.moduleOpts...)
			if err != nil {
				_ = ins.Close(ctx)
				return nil, err
			}
			modules[path] = mod
			ins.modules = append(ins.modules, mod)
		}

		export := p.Wasm.Export
		if export == "" {
			export = p.Name
		}
		method, err := mod.Method(export)
		if err != nil {
			_ = ins.Close(ctx)
			return nil, err
		}
		plugins[p.Name] = method
	}

	reg.Register(plugins)

	ins.Names = make([]string, 0, len(plugins))
	for name := range plugins {
		ins.Names = append(ins.Names, name)
	}
	sort.Strings(ins.Names)

	Logger().Debug("manifest installed",
		zap.String("name", m.Name),
		zap.Int("plugins", len(plugins)),
		zap.Int("modules", len(ins.modules)))

	return ins, nil
}

// InstallFile loads the manifest at path and installs it. Relative WASM
// paths resolve against the manifest's directory unless WithBaseDir says
// otherwise.
func InstallFile(ctx context.Context, path string, reg *registry.Registry, opts ...InstallOption) (*Installed, error) {
	m, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	opts = append([]InstallOption{WithBaseDir(filepath.Dir(path))}, opts...)
	return Install(ctx, m, reg, opts...)
}

// InstallGlob discovers manifests under root matching pattern and installs
// each in sorted path order into one combined result.
func InstallGlob(ctx context.Context, root, pattern string, reg *registry.Registry, opts ...InstallOption) (*Installed, error) {
	paths, err := Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	combined := &Installed{}
	for _, path := range paths {
		ins, err := InstallFile(ctx, path, reg, opts...)
		if err != nil {
			_ = combined.Close(ctx)
			return nil, err
		}
		combined.Names = append(combined.Names, ins.Names...)
		combined.modules = append(combined.modules, ins.modules...)
	}
	return combined, nil
}
