// Package errors provides structured error types for the rdotnet library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindIndexOutOfRange).
//		Value(idx).
//		Detail("index %d out of range [0, %d)", idx, length).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IndexOutOfRange(10, 5)
//	err := errors.LibraryNotFound("libR.so", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
