package vectorx

import (
	"errors"
	"fmt"
)

// ErrStorageExhausted reports that an Allocator refused a slot request.
// Operations that fail with it leave the container exactly as it was.
var ErrStorageExhausted = errors.New("storage exhausted")

// Allocator acquires and releases raw slot blocks. A block returned by
// Alloc holds n zeroed slots; no element is considered live within it
// until a Vector constructs one there.
type Allocator[T any] interface {
	Alloc(n int) ([]T, error)
	Free(block []T)
}

// HeapAllocator backs blocks with the Go runtime. Free zeroes the block
// so anything it still references becomes collectable.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Alloc(n int) ([]T, error) {
	return make([]T, n), nil
}

func (HeapAllocator[T]) Free(block []T) {
	clear(block)
}

// LimitAllocator caps the total number of outstanding slots. Alloc
// fails with ErrStorageExhausted once the budget would be exceeded,
// which makes resource-exhaustion paths testable.
type LimitAllocator[T any] struct {
	Limit int
	used  int
}

func (a *LimitAllocator[T]) Alloc(n int) ([]T, error) {
	if a.used+n > a.Limit {
		return nil, fmt.Errorf("%w: %d slots requested, %d of %d in use", ErrStorageExhausted, n, a.used, a.Limit)
	}
	a.used += n
	return make([]T, n), nil
}

func (a *LimitAllocator[T]) Free(block []T) {
	a.used -= len(block)
	clear(block)
}

// InUse reports the number of slots currently allocated.
func (a *LimitAllocator[T]) InUse() int {
	return a.used
}

// RawStorage owns a fixed block of slots for elements of type T. It
// knows only its capacity; which slots hold live elements is tracked
// entirely by the Vector that owns it. Releasing storage never runs
// element destroy hooks; the owner must destroy live elements first.
//
// A RawStorage must not be duplicated by struct assignment: the copy
// would alias the block without the live elements that back it.
// Ownership moves via Swap or Move only.
type RawStorage[T any] struct {
	block []T
	alloc Allocator[T]
}

// NewRawStorage acquires a block of capacity slots from alloc. A nil
// alloc defaults to HeapAllocator. Capacity 0 means no block. On
// allocation failure no partial state results.
func NewRawStorage[T any](alloc Allocator[T], capacity int) (RawStorage[T], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	if capacity < 0 {
		panic(fmt.Sprintf("vectorx: negative capacity %d", capacity))
	}
	r := RawStorage[T]{alloc: alloc}
	if capacity > 0 {
		block, err := alloc.Alloc(capacity)
		if err != nil {
			return RawStorage[T]{alloc: alloc}, fmt.Errorf("raw storage: %w", err)
		}
		r.block = block
	}
	return r, nil
}

// Capacity returns the number of slots in the owned block.
func (r *RawStorage[T]) Capacity() int {
	return len(r.block)
}

// Slot returns the slot at index. Panics if index is outside
// [0, capacity); that is a caller bug, not a runtime failure.
func (r *RawStorage[T]) Slot(index int) *T {
	if index < 0 || index >= len(r.block) {
		panic(fmt.Sprintf("vectorx: slot %d out of range [0, %d)", index, len(r.block)))
	}
	return &r.block[index]
}

// From returns the window of slots starting offset slots past the
// block start. Offset may equal capacity, yielding an empty window.
func (r *RawStorage[T]) From(offset int) []T {
	if offset < 0 || offset > len(r.block) {
		panic(fmt.Sprintf("vectorx: offset %d out of range [0, %d]", offset, len(r.block)))
	}
	return r.block[offset:]
}

// Swap exchanges blocks (and their allocators) in constant time.
func (r *RawStorage[T]) Swap(other *RawStorage[T]) {
	r.block, other.block = other.block, r.block
	r.alloc, other.alloc = other.alloc, r.alloc
}

// Move transfers block ownership out of the receiver, which is left
// empty but keeps its allocator.
func (r *RawStorage[T]) Move() RawStorage[T] {
	out := RawStorage[T]{block: r.block, alloc: r.alloc}
	r.block = nil
	return out
}

// Release returns the block to its allocator. Safe to call on an
// empty storage. The caller must have destroyed all live elements.
func (r *RawStorage[T]) Release() {
	if r.block == nil {
		return
	}
	r.alloc.Free(r.block)
	r.block = nil
}

func (r *RawStorage[T]) allocator() Allocator[T] {
	if r.alloc == nil {
		return HeapAllocator[T]{}
	}
	return r.alloc
}
