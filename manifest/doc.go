// Package manifest describes plugin packs as YAML documents and installs
// them into a registry.
//
// A manifest names a pack, pins the host version range it needs and lists
// plugins. A plugin carries either a static value or a reference to an
// export of a WASM module:
//
//	name: vehicle-pack
//	version: 1.2.0
//	requires: ">= 0.3"
//	plugins:
//	  - name: maxSpeed
//	    value: 120
//	  - name: describe
//	    wasm:
//	      path: plugins/vehicle.wasm
//	  - name: slower
//	    wasm:
//	      path: plugins/vehicle.wasm
//	      export: reduceSpeed
//
// The export defaults to the plugin name. A WASM file referenced by
// several plugins loads once.
//
// Install wires a manifest into a registry:
//
//	reg := registry.New()
//	ins, err := manifest.InstallFile(ctx, "pack/plugin.yaml", reg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ins.Close(ctx)
//
// Discover and InstallGlob walk a directory tree with doublestar patterns
// such as "**/plugin.yaml" for multi-pack setups.
package manifest
