package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // argument and shape validation
	PhaseAccess   Phase = "access"   // foreign buffer reads/writes
	PhaseProtect  Phase = "protect"  // foreign GC protection
	PhaseLoad     Phase = "load"     // dynamic library loading
	PhaseResolve  Phase = "resolve"  // entry point resolution
)

// Kind categorizes the error
type Kind string

const (
	KindIndexOutOfRange    Kind = "index_out_of_range"
	KindLengthMismatch     Kind = "length_mismatch"
	KindTypeMismatch       Kind = "type_mismatch"
	KindNameInvalid        Kind = "name_invalid"
	KindLibraryNotFound    Kind = "library_not_found"
	KindEntryPointNotFound Kind = "entry_point_not_found"
	KindAlreadyReleased    Kind = "already_released"
	KindProtectFailed      Kind = "protect_failed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is a structured error of the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IndexOutOfRange creates an out-of-range error for a vector index
func IndexOutOfRange(index, length int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Value:  index,
	}
}

// RowOutOfRange creates an out-of-range error naming the row axis
func RowOutOfRange(row, rows int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("row %d out of range [0, %d)", row, rows),
		Value:  row,
	}
}

// ColumnOutOfRange creates an out-of-range error naming the column axis
func ColumnOutOfRange(col, cols int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("column %d out of range [0, %d)", col, cols),
		Value:  col,
	}
}

// LengthMismatch creates a bulk-write length mismatch error
func LengthMismatch(got, want int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindLengthMismatch,
		Detail: fmt.Sprintf("got %d values, buffer holds %d", got, want),
		Value:  got,
	}
}

// TypeMismatch creates a foreign object type mismatch error
func TypeMismatch(want, got string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf("expected %s object, got %s", want, got),
	}
}

// NameInvalid creates an invalid-name error for libraries and symbols
func NameInvalid(what string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindNameInvalid,
		Detail: fmt.Sprintf("%s name is empty", what),
	}
}

// LibraryNotFound creates a library load failure error
func LibraryNotFound(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLibraryNotFound,
		Detail: fmt.Sprintf("library %q", name),
		Value:  name,
		Cause:  cause,
	}
}

// EntryPointNotFound creates a symbol resolution failure error
func EntryPointNotFound(library, symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindEntryPointNotFound,
		Detail: fmt.Sprintf("entry point %q in library %q", symbol, library),
		Value:  symbol,
		Cause:  cause,
	}
}

// AlreadyReleased creates an error for operations on a released handle
func AlreadyReleased(what string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindAlreadyReleased,
		Detail: fmt.Sprintf("%s has been released", what),
	}
}

// ProtectFailed creates an error for a failed foreign GC protection request
func ProtectFailed(cause error) *Error {
	return &Error{
		Phase: PhaseProtect,
		Kind:  KindProtectFailed,
		Cause: cause,
	}
}
