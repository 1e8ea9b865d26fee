// Package guard provides scoped protection of foreign heap objects against
// the embedded interpreter's garbage collector.
//
// A Guard is acquired immediately before touching a foreign buffer and
// released immediately after, typically via defer so no exit path can skip
// the release. While a guard is live the protected object will not be
// relocated or freed by the foreign collector. Guards protect against the
// foreign collector only; they do not synchronize concurrent Go callers.
package guard
