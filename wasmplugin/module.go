package wasmplugin

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/object-runtime/errors"
	"github.com/wippyai/object-runtime/object"
)

// Module is a loaded plugin. Each Module owns an isolated wazero runtime;
// closing the Module releases it along with every method bound from it.
type Module struct {
	runtime  wazero.Runtime
	instance api.Module
	allocate api.Function
	closed   bool
}

// Load compiles and instantiates a plugin from its binary. The module runs
// in its own wazero runtime with WASI preview1 available. When the guest
// exports _initialize it is called here, once.
func Load(ctx context.Context, wasmBytes []byte, opts ...Option) (*Module, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.memoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("compile module", err)
	}

	modCfg := wazero.NewModuleConfig().WithName(cfg.name)
	if cfg.stdout != nil {
		modCfg = modCfg.WithStdout(cfg.stdout)
	}
	if cfg.stderr != nil {
		modCfg = modCfg.WithStderr(cfg.stderr)
	}

	instance, err := rt.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	// Reactor-style builds export _initialize instead of _start.
	if init := instance.ExportedFunction(initExport); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = rt.Close(ctx)
			return nil, errors.Load("call "+initExport, err)
		}
	}

	m := &Module{
		runtime:  rt,
		instance: instance,
		allocate: instance.ExportedFunction(allocateExport),
	}

	Logger().Debug("module loaded",
		zap.String("name", instance.Name()),
		zap.Int("exports", len(instance.ExportedFunctionDefinitions())))

	return m, nil
}

// Method wraps the named export as a capability method. The returned
// method JSON-encodes its arguments as an array, ships them to the guest
// and decodes the guest's JSON reply.
func (m *Module) Method(export string) (object.Method, error) {
	if m.closed {
		return nil, errors.Closed("module")
	}

	fn := m.instance.ExportedFunction(export)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}

	return func(ctx context.Context, _ *object.Instance, args ...any) (any, error) {
		return m.call(ctx, export, fn, args)
	}, nil
}

// Exports lists the module's exported function names, sorted.
func (m *Module) Exports() []string {
	defs := m.instance.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the instantiated module's name.
func (m *Module) Name() string {
	return m.instance.Name()
}

// Close releases the module's runtime. Methods bound from the module fail
// with a closed error afterwards. Close is idempotent.
func (m *Module) Close(ctx context.Context) error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.runtime.Close(ctx)
}

// call runs one packed-JSON exchange with the guest.
func (m *Module) call(ctx context.Context, export string, fn api.Function, args []any) (any, error) {
	if m.closed {
		return nil, errors.Closed("module")
	}

	var packedIn uint64
	if len(args) > 0 {
		payload, err := json.Marshal(args)
		if err != nil {
			return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
				Path(export).
				Cause(err).
				Detail("encode arguments").
				Build()
		}

		ptr, err := m.alloc(ctx, payload)
		if err != nil {
			return nil, err
		}
		packedIn = packPtrLen(ptr, uint32(len(payload)))
	}

	results, err := fn.Call(ctx, packedIn)
	if err != nil {
		return nil, errors.CallFailed(export, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return m.readPacked(export, results[0])
}

// alloc copies payload into guest memory via the allocate export.
func (m *Module) alloc(ctx context.Context, payload []byte) (uint32, error) {
	if m.allocate == nil {
		return 0, errors.NotFound(errors.PhaseCall, "export", allocateExport)
	}

	size := uint32(len(payload))
	res, err := m.allocate.Call(ctx, uint64(size))
	if err != nil || len(res) == 0 {
		return 0, errors.AllocationFailed(size, err)
	}

	//nolint:gosec // WASM pointers are 32-bit
	ptr := uint32(res[0])
	if !m.instance.Memory().Write(ptr, payload) {
		return 0, errors.OutOfBounds(errors.PhaseCall, []string{allocateExport}, int(ptr), int(size))
	}
	return ptr, nil
}

// readPacked decodes the guest's packed JSON reply. A zero length means
// the guest returned no payload.
func (m *Module) readPacked(export string, packed uint64) (any, error) {
	ptr, length := unpackPtrLen(packed)
	if length == 0 {
		return nil, nil
	}

	data, ok := m.instance.Memory().Read(ptr, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseCall, []string{export}, int(ptr), int(length))
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidData).
			Path(export).
			Cause(err).
			Detail("decode result").
			Build()
	}
	return value, nil
}
