package view

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/jmp75/rdotnet/enginetest"
	rerrors "github.com/jmp75/rdotnet/errors"
	"github.com/jmp75/rdotnet/native"
)

func newTestVector(t *testing.T, e *enginetest.Engine, n int) *ComplexVector {
	t.Helper()
	obj, err := e.NewComplexVector(n)
	if err != nil {
		t.Fatalf("NewComplexVector: %v", err)
	}
	vec, err := NewComplexVector(e, e, obj)
	if err != nil {
		t.Fatalf("view.NewComplexVector: %v", err)
	}
	return vec
}

func TestVector_RoundTrip(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 6)

	values := []native.Complex{
		{Real: 3, Imag: 4},
		native.Zero,
		native.Identity,
		native.I,
		native.NaN(),
		native.Inf(),
	}
	for i, v := range values {
		if err := vec.Set(i, v); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	for i, want := range values {
		got, err := vec.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Get(%d) = %v, want %v", i, got, want)
		}
	}

	if e.ProtectedCount() != 0 {
		t.Fatalf("protection slots leaked: %d", e.ProtectedCount())
	}
}

func TestVector_Bounds(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 3)

	for _, idx := range []int{-1, 3, 100} {
		if _, err := vec.Get(idx); !rerrors.IsKind(err, rerrors.KindIndexOutOfRange) {
			t.Fatalf("Get(%d) = %v, want index_out_of_range", idx, err)
		}
		if err := vec.Set(idx, native.Zero); !rerrors.IsKind(err, rerrors.KindIndexOutOfRange) {
			t.Fatalf("Set(%d) = %v, want index_out_of_range", idx, err)
		}
	}

	// Bounds failures must not touch the protection table.
	if e.ProtectedCount() != 0 {
		t.Fatalf("protection slots leaked: %d", e.ProtectedCount())
	}
}

func TestVector_EmptyBounds(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 0)

	if _, err := vec.Get(0); !rerrors.IsKind(err, rerrors.KindIndexOutOfRange) {
		t.Fatalf("Get(0) on empty vector = %v", err)
	}
	if err := vec.SetAll(nil); err != nil {
		t.Fatalf("SetAll(nil) on empty vector: %v", err)
	}
}

func TestVector_SetAll(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 3)

	values := []native.Complex{{Real: 1, Imag: 2}, {Real: 3, Imag: 4}, {Real: 5, Imag: 6}}
	if err := vec.SetAll(values); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	got, err := vec.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	for i, want := range values {
		if !got[i].Equal(want) {
			t.Fatalf("element %d = %v, want %v", i, got[i], want)
		}
	}

	if e.ProtectedCount() != 0 {
		t.Fatalf("protection slots leaked: %d", e.ProtectedCount())
	}
}

func TestVector_SetAll_LengthMismatch(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 3)

	marker := native.Complex{Real: 9, Imag: 9}
	if err := vec.Set(0, marker); err != nil {
		t.Fatalf("Set: %v", err)
	}

	err := vec.SetAll([]native.Complex{{Real: 1}})
	if !rerrors.IsKind(err, rerrors.KindLengthMismatch) {
		t.Fatalf("SetAll short = %v, want length_mismatch", err)
	}
	err = vec.SetAll(make([]native.Complex, 4))
	if !rerrors.IsKind(err, rerrors.KindLengthMismatch) {
		t.Fatalf("SetAll long = %v, want length_mismatch", err)
	}

	// The rejected writes must leave the buffer unmodified.
	got, err := vec.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(marker) {
		t.Fatalf("buffer modified by rejected SetAll: %v", got)
	}
}

func TestVector_TypeMismatch(t *testing.T) {
	e := enginetest.New()
	obj, err := e.NewRealVector(3)
	if err != nil {
		t.Fatalf("NewRealVector: %v", err)
	}
	if _, err := NewComplexVector(e, e, obj); !rerrors.IsKind(err, rerrors.KindTypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestVector_SurvivesCompaction(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 2)

	want := native.Complex{Real: 42, Imag: -1}
	if err := vec.Set(1, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// The foreign collector moves the object between accesses. The view
	// must follow the updated data pointer.
	if err := e.Compact(); err != nil {
		t.Fatalf("Compact: %v", err)
	}

	got, err := vec.Get(1)
	if err != nil {
		t.Fatalf("Get after compaction: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Get after compaction = %v, want %v", got, want)
	}
}

func TestVector_ElementSize(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 1)
	if vec.ElementSize() != 16 {
		t.Fatalf("ElementSize = %d", vec.ElementSize())
	}
	if vec.Len() != 1 {
		t.Fatalf("Len = %d", vec.Len())
	}
}

func TestVector_InterleavedLayout(t *testing.T) {
	e := enginetest.New()
	obj, err := e.NewComplexVector(2)
	if err != nil {
		t.Fatalf("NewComplexVector: %v", err)
	}
	vec, err := NewComplexVector(e, e, obj)
	if err != nil {
		t.Fatalf("view.NewComplexVector: %v", err)
	}
	if err := vec.SetAll([]native.Complex{{Real: 1, Imag: 2}, {Real: 3, Imag: 4}}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	// Element i occupies bytes [16i, 16i+16): real in the low 8 bytes,
	// imaginary in the high 8.
	raw, err := e.Read(obj.DataPointer(), 32)
	if err != nil {
		t.Fatalf("raw read: %v", err)
	}
	want := []native.Complex{{Real: 1, Imag: 2}, {Real: 3, Imag: 4}}
	for i, w := range want {
		if z := native.FromBytes(raw[i*16:]); !z.Equal(w) {
			t.Fatalf("element %d bytes decode to %v, want %v", i, z, w)
		}
	}
}

func TestVector_WazeroForeignMemory(t *testing.T) {
	ctx := context.Background()
	e, err := enginetest.NewWazero(ctx)
	if err != nil {
		t.Fatalf("NewWazero: %v", err)
	}
	defer e.Close()

	vec := newTestVector(t, e, 4)
	values := []native.Complex{{Real: 1, Imag: -1}, native.NaN(), native.Inf(), native.Zero}
	if err := vec.SetAll(values); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	for i, want := range values {
		got, err := vec.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Get(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestVector_GetAfterCollect(t *testing.T) {
	e := enginetest.New()
	vec := newTestVector(t, e, 1)

	if err := e.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// The object is gone; protection fails and the error surfaces rather
	// than reading freed memory.
	_, err := vec.Get(0)
	if !rerrors.IsKind(err, rerrors.KindProtectFailed) {
		t.Fatalf("Get on collected object = %v, want protect_failed", err)
	}
	var serr *rerrors.Error
	if !stderrors.As(err, &serr) {
		t.Fatal("expected structured error")
	}
}
