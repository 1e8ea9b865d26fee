package view

import (
	"github.com/jmp75/rdotnet"
	"github.com/jmp75/rdotnet/errors"
	"github.com/jmp75/rdotnet/guard"
	"github.com/jmp75/rdotnet/native"
)

// ComplexMatrix is a typed accessor over a foreign matrix of packed complex
// elements stored in column-major order.
type ComplexMatrix struct {
	mem  rdotnet.Memory
	prot rdotnet.Protector
	obj  rdotnet.MatrixObject
	rows int
	cols int
}

// NewComplexMatrix wraps a foreign complex matrix object. The interpreter
// tags matrices with the same element type as vectors; shape comes from the
// object's dimensions.
func NewComplexMatrix(mem rdotnet.Memory, prot rdotnet.Protector, obj rdotnet.MatrixObject) (*ComplexMatrix, error) {
	if obj.Type() != rdotnet.ComplexVector {
		return nil, errors.TypeMismatch(rdotnet.ComplexVector.String(), obj.Type().String())
	}
	return &ComplexMatrix{mem: mem, prot: prot, obj: obj, rows: obj.Rows(), cols: obj.Cols()}, nil
}

// Rows returns the declared row count.
func (m *ComplexMatrix) Rows() int {
	return m.rows
}

// Cols returns the declared column count.
func (m *ComplexMatrix) Cols() int {
	return m.cols
}

// ElementSize returns the byte width of one element.
func (m *ComplexMatrix) ElementSize() int {
	return native.Size
}

func (m *ComplexMatrix) checkIndex(row, col int) error {
	if row < 0 || row >= m.rows {
		return errors.RowOutOfRange(row, m.rows)
	}
	if col < 0 || col >= m.cols {
		return errors.ColumnOutOfRange(col, m.cols)
	}
	return nil
}

// slice builds the element locator from the object's current data pointer.
// Call only while a guard is held.
func (m *ComplexMatrix) slice() ForeignSlice {
	return ForeignSlice{Base: m.obj.DataPointer(), Elems: m.rows * m.cols, Stride: native.Size}
}

// Get reads element (row, col).
func (m *ComplexMatrix) Get(row, col int) (native.Complex, error) {
	if err := m.checkIndex(row, col); err != nil {
		return native.Complex{}, err
	}
	g, err := guard.Acquire(m.prot, m.obj.Handle())
	if err != nil {
		return native.Complex{}, err
	}
	defer g.Release()

	buf, err := m.mem.Read(m.slice().Addr(columnMajorIndex(row, col, m.rows)), native.Size)
	if err != nil {
		return native.Complex{}, err
	}
	return native.FromBytes(buf), nil
}

// Set writes element (row, col).
func (m *ComplexMatrix) Set(row, col int, value native.Complex) error {
	if err := m.checkIndex(row, col); err != nil {
		return err
	}
	g, err := guard.Acquire(m.prot, m.obj.Handle())
	if err != nil {
		return err
	}
	defer g.Release()

	var buf [native.Size]byte
	value.PutBytes(buf[:])
	return m.mem.Write(m.slice().Addr(columnMajorIndex(row, col, m.rows)), buf[:])
}

// Fill populates the whole matrix from row-major input slices, written as
// one contiguous column-major write under a single guard. The input must
// have exactly Rows slices of exactly Cols values each; on any mismatch the
// buffer is left unmodified.
func (m *ComplexMatrix) Fill(values [][]native.Complex) error {
	if len(values) != m.rows {
		return errors.LengthMismatch(len(values), m.rows)
	}
	for _, row := range values {
		if len(row) != m.cols {
			return errors.LengthMismatch(len(row), m.cols)
		}
	}
	if m.rows*m.cols == 0 {
		return nil
	}
	g, err := guard.Acquire(m.prot, m.obj.Handle())
	if err != nil {
		return err
	}
	defer g.Release()

	buf := make([]byte, m.rows*m.cols*native.Size)
	for r, rowVals := range values {
		for c, z := range rowVals {
			z.PutBytes(buf[columnMajorIndex(r, c, m.rows)*native.Size:])
		}
	}
	return m.mem.Write(m.slice().Base, buf)
}
