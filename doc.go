// Package rdotnet provides safe, typed access to numeric arrays that live
// inside an embedded R interpreter's native heap.
//
// The interpreter owns its heap and runs its own garbage collector; this
// library never owns foreign memory. Every raw access is bracketed by a
// protection guard so the foreign collector cannot move or free the object
// mid-copy, and all offset arithmetic is centralized in a bounds-checked
// foreign-slice abstraction.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	rdotnet/        Root package with core Memory, Protector and object interfaces
//	├── native/     Packed complex value matching the interpreter's struct layout
//	├── guard/      Scoped protection against the foreign garbage collector
//	├── view/       Typed vector and matrix accessors over foreign buffers
//	├── dynlib/     Cross-platform dynamic library loading and symbol resolution
//	├── errors/     Structured error types for debugging
//	└── enginetest/ Controllable fake engine (relocatable heap) for tests
//
// # Quick Start
//
// Read and write elements of a foreign complex vector:
//
//	vec, err := view.NewComplexVector(mem, prot, obj)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := vec.Set(0, native.Complex{Real: 3, Imag: 4}); err != nil {
//	    log.Fatal(err)
//	}
//	z, err := vec.Get(0)
//
// Load the interpreter's shared library and resolve an entry point:
//
//	lib, err := dynlib.Load(dynlib.FileName("R"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Release()
//
//	var rInit func() int32
//	if err := lib.ResolveFunc("Rf_initEmbeddedR", &rInit); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Guards protect foreign objects from the foreign collector only. Two
// goroutines touching the same foreign buffer still race with each other;
// ordering between overlapping reads and writes is the caller's
// responsibility. A loaded library may be shared across goroutines for
// symbol resolution, but Load and Release require external serialization.
package rdotnet
