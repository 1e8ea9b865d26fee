// Package native defines value types whose in-memory layout matches the
// embedded interpreter's own C structs byte for byte, so raw buffer bytes
// can be reinterpreted without conversion.
package native
