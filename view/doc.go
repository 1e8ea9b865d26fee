// Package view provides typed element access to numeric arrays stored in
// the embedded interpreter's heap.
//
// A view never owns the foreign buffer. Each element access acquires a
// protection guard, re-reads the object's data pointer (the foreign
// collector may have moved the object since the last access), copies the
// raw bytes, and releases the guard. All offset arithmetic goes through
// ForeignSlice so the vector and matrix paths cannot diverge.
//
// Views are not safe for concurrent use over the same foreign object;
// guards fence off the foreign collector, not other Go callers.
package view
