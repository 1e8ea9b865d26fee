package enginetest

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/jmp75/rdotnet"
)

// heapModule is a minimal wasm module: one linear memory (min 1 page),
// exported as "memory". Hand-assembled so no compiler is needed.
var heapModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version 1
	// memory section: 1 memory, limits {min: 1}
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section: "memory" -> mem 0
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

const wasmPageSize = 65536

// wazeroHeap backs the fake engine with a wasm module's linear memory, a
// memory region genuinely outside the Go heap.
type wazeroHeap struct {
	mem api.Memory
}

// NewWazero creates an engine whose heap is a wazero linear memory. Close
// the engine to release the wazero runtime.
func NewWazero(ctx context.Context) (*Engine, error) {
	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, heapModule)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate heap module: %w", err)
	}
	mem := mod.Memory()
	if mem == nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("heap module exports no memory")
	}

	e := New()
	e.heap = &wazeroHeap{mem: mem}
	e.closer = func() error { return rt.Close(ctx) }
	return e, nil
}

func (h *wazeroHeap) read(addr uint64, length uint32) ([]byte, error) {
	if addr == 0 || addr > math.MaxUint32 {
		return nil, fmt.Errorf("heap read address %d outside linear memory", addr)
	}
	buf, ok := h.mem.Read(uint32(addr), length)
	if !ok {
		return nil, fmt.Errorf("heap read [%d, %d) out of bounds (size %d)", addr, addr+uint64(length), h.mem.Size())
	}
	// Read returns a view into the linear memory; copy so callers hold
	// stable bytes.
	out := make([]byte, length)
	copy(out, buf)
	return out, nil
}

func (h *wazeroHeap) write(addr uint64, data []byte) error {
	if addr == 0 || addr > math.MaxUint32 {
		return fmt.Errorf("heap write address %d outside linear memory", addr)
	}
	if !h.mem.Write(uint32(addr), data) {
		return fmt.Errorf("heap write [%d, %d) out of bounds (size %d)", addr, addr+uint64(len(data)), h.mem.Size())
	}
	return nil
}

func (h *wazeroHeap) ensure(size uint64) error {
	cur := uint64(h.mem.Size())
	if size <= cur {
		return nil
	}
	needed := (size - cur + wasmPageSize - 1) / wasmPageSize
	if _, ok := h.mem.Grow(uint32(needed)); !ok {
		return fmt.Errorf("heap grow by %d pages failed", needed)
	}
	return nil
}

var _ rdotnet.Memory = (*Engine)(nil)
var _ rdotnet.Protector = (*Engine)(nil)
