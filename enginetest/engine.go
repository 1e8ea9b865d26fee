package enginetest

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jmp75/rdotnet"
	"github.com/jmp75/rdotnet/native"
)

// heapBase keeps address 0 free so a zero data pointer always means null.
const heapBase = 16

// Engine is the fake foreign interpreter. It owns a heap of relocatable
// objects and a protection table, and implements rdotnet.Memory and
// rdotnet.Protector.
type Engine struct {
	mu         sync.Mutex
	heap       heap
	next       uint64
	objects    map[rdotnet.Handle]*Object
	nextHandle rdotnet.Handle

	// protection table: token = slot index + 1, slots reused via free list
	slots    []protectSlot
	freeList []int

	closer func() error
}

type protectSlot struct {
	handle rdotnet.Handle
	valid  bool
}

// New creates an engine backed by an in-process byte heap.
func New() *Engine {
	return &Engine{
		heap:    newByteHeap(),
		next:    heapBase,
		objects: make(map[rdotnet.Handle]*Object),
	}
}

// Close releases the heap backend, if it holds external resources.
func (e *Engine) Close() error {
	if e.closer != nil {
		return e.closer()
	}
	return nil
}

// Object is a fake foreign heap object. It implements rdotnet.VectorObject
// and rdotnet.MatrixObject.
type Object struct {
	eng    *Engine
	handle rdotnet.Handle
	typ    rdotnet.ExprType
	addr   uint64
	size   uint64
	elems  int
	rows   int
	cols   int
	pins   int
	freed  bool
}

func (o *Object) Handle() rdotnet.Handle { return o.handle }
func (o *Object) Type() rdotnet.ExprType { return o.typ }
func (o *Object) Len() int               { return o.elems }
func (o *Object) Rows() int              { return o.rows }
func (o *Object) Cols() int              { return o.cols }

// DataPointer returns the object's current base address. The value is only
// stable while the object is protected.
func (o *Object) DataPointer() uint64 {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	return o.addr
}

func (e *Engine) alloc(size uint64) (uint64, error) {
	addr := e.next
	e.next += (size + 15) &^ 15
	if err := e.heap.ensure(e.next); err != nil {
		return 0, err
	}
	return addr, nil
}

func (e *Engine) newObject(typ rdotnet.ExprType, size uint64) (*Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	addr, err := e.alloc(size)
	if err != nil {
		return nil, err
	}
	e.nextHandle++
	o := &Object{eng: e, handle: e.nextHandle, typ: typ, addr: addr, size: size}
	e.objects[o.handle] = o
	return o, nil
}

// NewComplexVector allocates a complex vector of n elements, zero-filled.
func (e *Engine) NewComplexVector(n int) (*Object, error) {
	o, err := e.newObject(rdotnet.ComplexVector, uint64(n)*native.Size)
	if err != nil {
		return nil, err
	}
	o.elems = n
	return o, nil
}

// NewComplexMatrix allocates a rows-by-cols complex matrix, zero-filled.
// Storage is column-major, as in the real interpreter.
func (e *Engine) NewComplexMatrix(rows, cols int) (*Object, error) {
	o, err := e.newObject(rdotnet.ComplexVector, uint64(rows)*uint64(cols)*native.Size)
	if err != nil {
		return nil, err
	}
	o.elems = rows * cols
	o.rows = rows
	o.cols = cols
	return o, nil
}

// NewRealVector allocates a real vector; used to exercise type mismatches.
func (e *Engine) NewRealVector(n int) (*Object, error) {
	o, err := e.newObject(rdotnet.RealVector, uint64(n)*8)
	if err != nil {
		return nil, err
	}
	o.elems = n
	return o, nil
}

// Read implements rdotnet.Memory.
func (e *Engine) Read(addr uint64, length uint32) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heap.read(addr, length)
}

// Write implements rdotnet.Memory.
func (e *Engine) Write(addr uint64, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heap.write(addr, data)
}

// Protect implements rdotnet.Protector.
func (e *Engine) Protect(h rdotnet.Handle) (rdotnet.ProtectToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.objects[h]
	if !ok || o.freed {
		return 0, fmt.Errorf("protect: unknown or freed handle %d", h)
	}
	o.pins++

	var slot int
	if n := len(e.freeList); n > 0 {
		slot = e.freeList[n-1]
		e.freeList = e.freeList[:n-1]
		e.slots[slot] = protectSlot{handle: h, valid: true}
	} else {
		slot = len(e.slots)
		e.slots = append(e.slots, protectSlot{handle: h, valid: true})
	}
	return rdotnet.ProtectToken(slot + 1), nil
}

// Unprotect implements rdotnet.Protector. Unknown or already-released
// tokens are ignored.
func (e *Engine) Unprotect(tok rdotnet.ProtectToken) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := int(tok) - 1
	if slot < 0 || slot >= len(e.slots) || !e.slots[slot].valid {
		Logger().Warn("unprotect of invalid token", zap.Uint64("token", uint64(tok)))
		return
	}
	h := e.slots[slot].handle
	e.slots[slot] = protectSlot{}
	e.freeList = append(e.freeList, slot)
	if o, ok := e.objects[h]; ok && o.pins > 0 {
		o.pins--
	}
}

// ProtectedCount returns the number of outstanding protection tokens.
// Guard tests use it to assert that no protection slot leaks.
func (e *Engine) ProtectedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, s := range e.slots {
		if s.valid {
			n++
		}
	}
	return n
}

// Compact simulates a moving collection: every live, unprotected object is
// relocated to a fresh address and its data pointer updated. Protected
// objects stay put.
func (e *Engine) Compact() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, o := range e.objects {
		if o.freed || o.pins > 0 || o.size == 0 {
			continue
		}
		data, err := e.heap.read(o.addr, uint32(o.size))
		if err != nil {
			return err
		}
		addr, err := e.alloc(o.size)
		if err != nil {
			return err
		}
		if err := e.heap.write(addr, data); err != nil {
			return err
		}
		// Poison the old location so stale pointers read garbage, not
		// the moved data.
		poison := make([]byte, o.size)
		for i := range poison {
			poison[i] = 0xdd
		}
		if err := e.heap.write(o.addr, poison); err != nil {
			return err
		}
		Logger().Debug("relocated object",
			zap.Uint64("handle", uint64(o.handle)),
			zap.Uint64("from", o.addr),
			zap.Uint64("to", addr))
		o.addr = addr
	}
	return nil
}

// Collect simulates a full collection: every unprotected object is freed
// and its storage poisoned.
func (e *Engine) Collect() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, o := range e.objects {
		if o.freed || o.pins > 0 {
			continue
		}
		poison := make([]byte, o.size)
		for i := range poison {
			poison[i] = 0xdd
		}
		if err := e.heap.write(o.addr, poison); err != nil {
			return err
		}
		o.freed = true
		Logger().Debug("collected object", zap.Uint64("handle", uint64(o.handle)))
	}
	return nil
}
