package objectruntime

// Version is the library version advertised to plugin manifests.
// Manifests may constrain it through their "requires" field.
const Version = "0.3.0"
