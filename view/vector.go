package view

import (
	"github.com/jmp75/rdotnet"
	"github.com/jmp75/rdotnet/errors"
	"github.com/jmp75/rdotnet/guard"
	"github.com/jmp75/rdotnet/native"
)

// ComplexVector is a typed accessor over a foreign buffer of packed complex
// elements. The element count is fixed at construction; the data pointer is
// re-read under a guard on every access.
type ComplexVector struct {
	mem   rdotnet.Memory
	prot  rdotnet.Protector
	obj   rdotnet.VectorObject
	elems int
}

// NewComplexVector wraps a foreign complex vector object.
func NewComplexVector(mem rdotnet.Memory, prot rdotnet.Protector, obj rdotnet.VectorObject) (*ComplexVector, error) {
	if obj.Type() != rdotnet.ComplexVector {
		return nil, errors.TypeMismatch(rdotnet.ComplexVector.String(), obj.Type().String())
	}
	return &ComplexVector{mem: mem, prot: prot, obj: obj, elems: obj.Len()}, nil
}

// Len returns the declared element count.
func (v *ComplexVector) Len() int {
	return v.elems
}

// ElementSize returns the byte width of one element.
func (v *ComplexVector) ElementSize() int {
	return native.Size
}

// slice builds the element locator from the object's current data pointer.
// Call only while a guard is held.
func (v *ComplexVector) slice() ForeignSlice {
	return ForeignSlice{Base: v.obj.DataPointer(), Elems: v.elems, Stride: native.Size}
}

// Get reads element index.
func (v *ComplexVector) Get(index int) (native.Complex, error) {
	if index < 0 || index >= v.elems {
		return native.Complex{}, errors.IndexOutOfRange(index, v.elems)
	}
	g, err := guard.Acquire(v.prot, v.obj.Handle())
	if err != nil {
		return native.Complex{}, err
	}
	defer g.Release()

	buf, err := v.mem.Read(v.slice().Addr(index), native.Size)
	if err != nil {
		return native.Complex{}, err
	}
	return native.FromBytes(buf), nil
}

// Set writes element index.
func (v *ComplexVector) Set(index int, value native.Complex) error {
	if index < 0 || index >= v.elems {
		return errors.IndexOutOfRange(index, v.elems)
	}
	g, err := guard.Acquire(v.prot, v.obj.Handle())
	if err != nil {
		return err
	}
	defer g.Release()

	var buf [native.Size]byte
	value.PutBytes(buf[:])
	return v.mem.Write(v.slice().Addr(index), buf[:])
}

// SetAll populates the whole vector in one contiguous write: real and
// imaginary parts interleaved in element order, under a single guard. The
// value count must equal the vector length; on mismatch the buffer is left
// unmodified.
func (v *ComplexVector) SetAll(values []native.Complex) error {
	if len(values) != v.elems {
		return errors.LengthMismatch(len(values), v.elems)
	}
	if v.elems == 0 {
		return nil
	}
	g, err := guard.Acquire(v.prot, v.obj.Handle())
	if err != nil {
		return err
	}
	defer g.Release()

	buf := make([]byte, v.elems*native.Size)
	for i, z := range values {
		z.PutBytes(buf[i*native.Size:])
	}
	return v.mem.Write(v.slice().Base, buf)
}

// All reads the whole vector under a single guard.
func (v *ComplexVector) All() ([]native.Complex, error) {
	if v.elems == 0 {
		return nil, nil
	}
	g, err := guard.Acquire(v.prot, v.obj.Handle())
	if err != nil {
		return nil, err
	}
	defer g.Release()

	buf, err := v.mem.Read(v.slice().Base, uint32(v.elems*native.Size))
	if err != nil {
		return nil, err
	}
	out := make([]native.Complex, v.elems)
	for i := range out {
		out[i] = native.FromBytes(buf[i*native.Size:])
	}
	return out, nil
}
