// Package dynlib loads the interpreter's shared library and resolves its
// entry points at runtime, so the same binding logic works across operating
// systems without recompilation.
//
// One loader implementation exists per OS family, selected at build time by
// build tags: dlopen/dlsym via purego on unix-like systems, and
// LoadLibrary/GetProcAddress via the Win32 API on Windows. Both honor the
// same contract: an opaque comparable handle on success, a distinguishable
// structured error on failure, and an exactly-once, idempotent release.
package dynlib
