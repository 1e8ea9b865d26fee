// Package enginetest provides a controllable stand-in for the embedded
// interpreter: a heap of relocatable objects, a protection table, and a
// moving-collector simulation (Compact/Collect). It implements the root
// Memory and Protector capabilities so views and guards can be exercised
// without a live interpreter.
//
// Two heap backends are available: an in-process byte slice, and a wazero
// module's exported linear memory, which places the "foreign" buffer in
// memory genuinely outside the Go heap.
package enginetest
