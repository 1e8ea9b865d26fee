package enginetest

import (
	"fmt"
)

// heap is the storage backend for the fake engine. Addresses are absolute
// byte offsets; address 0 is reserved as the null address.
type heap interface {
	read(addr uint64, length uint32) ([]byte, error)
	write(addr uint64, data []byte) error
	// ensure grows the backing storage to hold at least size bytes.
	ensure(size uint64) error
}

// byteHeap keeps the fake foreign heap in a plain byte slice.
type byteHeap struct {
	data []byte
}

func newByteHeap() *byteHeap {
	return &byteHeap{data: make([]byte, 4096)}
}

func (h *byteHeap) read(addr uint64, length uint32) ([]byte, error) {
	end := addr + uint64(length)
	if addr == 0 || end > uint64(len(h.data)) {
		return nil, fmt.Errorf("heap read [%d, %d) out of bounds (size %d)", addr, end, len(h.data))
	}
	out := make([]byte, length)
	copy(out, h.data[addr:end])
	return out, nil
}

func (h *byteHeap) write(addr uint64, data []byte) error {
	end := addr + uint64(len(data))
	if addr == 0 || end > uint64(len(h.data)) {
		return fmt.Errorf("heap write [%d, %d) out of bounds (size %d)", addr, end, len(h.data))
	}
	copy(h.data[addr:end], data)
	return nil
}

func (h *byteHeap) ensure(size uint64) error {
	if size <= uint64(len(h.data)) {
		return nil
	}
	grown := make([]byte, size*2)
	copy(grown, h.data)
	h.data = grown
	return nil
}
