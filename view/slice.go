package view

import (
	"github.com/jmp75/rdotnet/errors"
)

// ForeignSlice locates the elements of a foreign buffer: a base address, an
// element count and a fixed stride. It centralizes all offset math; both
// the vector and the matrix access paths reduce to a linear index here.
type ForeignSlice struct {
	Base   uint64
	Elems  int
	Stride uint32
}

// CheckIndex validates a linear element index.
func (s ForeignSlice) CheckIndex(i int) error {
	if i < 0 || i >= s.Elems {
		return errors.IndexOutOfRange(i, s.Elems)
	}
	return nil
}

// Addr returns the byte address of element i. The index must already be
// validated with CheckIndex.
func (s ForeignSlice) Addr(i int) uint64 {
	return s.Base + uint64(i)*uint64(s.Stride)
}

// columnMajorIndex maps (row, col) to the linear element index for the
// interpreter's column-major storage order: consecutive addresses vary
// fastest by row within a fixed column.
func columnMajorIndex(row, col, rows int) int {
	return col*rows + row
}
