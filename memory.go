package rdotnet

import (
	"fmt"
	"unsafe"
)

// ProcessMemory implements Memory over the current process address space.
// It is the implementation used against an in-process interpreter, where
// foreign data pointers are real addresses.
type ProcessMemory struct{}

// Read copies length bytes starting at addr.
func (ProcessMemory) Read(addr uint64, length uint32) ([]byte, error) {
	if addr == 0 {
		return nil, fmt.Errorf("read from null address")
	}
	if length == 0 {
		return nil, nil
	}
	out := make([]byte, length)
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), length)
	copy(out, src)
	return out, nil
}

// Write copies data to the buffer starting at addr.
func (ProcessMemory) Write(addr uint64, data []byte) error {
	if addr == 0 {
		return fmt.Errorf("write to null address")
	}
	if len(data) == 0 {
		return nil
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), len(data))
	copy(dst, data)
	return nil
}
