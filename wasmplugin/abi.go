package wasmplugin

// Exports the plugin contract names.
const (
	allocateExport = "allocate"
	initExport     = "_initialize"
)

// packPtrLen packs a guest pointer and byte length into the single u64
// that crosses the boundary.
func packPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// unpackPtrLen splits a packed u64 back into pointer and length.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	//nolint:gosec // WASM pointers and lengths are 32-bit
	return uint32(packed >> 32), uint32(packed)
}
