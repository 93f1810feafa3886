// Package wasmplugin loads WebAssembly modules and exposes their exports
// as capability methods.
//
// Plugins are core WASM modules, typically compiled against WASI preview1.
// Host and guest exchange values as JSON in linear memory, with pointer
// and byte length packed into a single u64 as (ptr << 32) | length in both
// directions.
//
// # Guest Contract
//
// A plugin module exports one function per capability plus an allocator:
//
//	allocate(size: u64) -> u64     reserve size bytes, return the pointer
//	<method>(packed: u64) -> u64   packed JSON arguments in, packed JSON out
//
// Method arguments arrive as a JSON array; the return payload may be any
// JSON value. A zero packed value means no payload in either direction.
// An optional _initialize export, as emitted by WASI reactor builds, runs
// once after instantiation.
//
// # Usage
//
//	data, _ := os.ReadFile("plugin.wasm")
//	mod, err := wasmplugin.Load(ctx, data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer mod.Close(ctx)
//
//	describe, err := mod.Method("describe")
//	if err != nil {
//		log.Fatal(err)
//	}
//	reg.Register(object.Properties{"describe": describe})
//
// # Thread Safety
//
// Module is NOT thread-safe. WASM instances are single-threaded; guard a
// shared Module externally or load one per goroutine.
package wasmplugin
