// Package errors provides structured error types for the object-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: property path, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindNotCallable).
//		Path("car", "start").
//		GoType("int").
//		Detail("capability holds a plain value").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseCall, "capability", "start")
//	err := errors.TypeMismatch(errors.PhaseRegistry, path, "string", "int")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
