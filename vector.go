package vectorx

import (
	"fmt"
	"iter"
)

// Vector is a dynamically-resizable contiguous sequence of T. It owns
// a RawStorage block plus a live-element count: slots [0, Len()) hold
// live elements, slots [Len(), Cap()) are uninitialized (zero).
//
// Every public operation is transactional: it either produces the
// documented post-state or fails leaving the vector exactly as it
// was. During growth, elements are fully established in the new block
// before any old element is destroyed, and the size is updated last.
//
// A Vector has a single logical owner; there is no internal
// synchronization. The zero value is an empty vector using
// HeapAllocator.
type Vector[T any] struct {
	store RawStorage[T]
	size  int
}

// New returns an empty vector.
func New[T any]() *Vector[T] {
	return NewWith[T](HeapAllocator[T]{})
}

// NewWith returns an empty vector whose storage comes from alloc.
func NewWith[T any](alloc Allocator[T]) *Vector[T] {
	return &Vector[T]{store: RawStorage[T]{alloc: alloc}}
}

// NewSize returns a vector of n default-constructed (zero-valued)
// elements with capacity n.
func NewSize[T any](n int) (*Vector[T], error) {
	v := New[T]()
	if err := v.Resize(n); err != nil {
		return nil, err
	}
	return v, nil
}

// Of builds a vector holding the given values in order. Values of
// Cloner types are cloned in; on any failure everything built so far
// is torn down and the error returned.
func Of[T any](values ...T) (*Vector[T], error) {
	v := New[T]()
	if err := v.Reserve(len(values)); err != nil {
		return nil, err
	}
	for i := range values {
		if _, err := v.PushBack(values[i]); err != nil {
			v.Destroy()
			return nil, err
		}
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots in the owned storage.
func (v *Vector[T]) Cap() int {
	return v.store.Capacity()
}

// At returns the element at index. Panics if index is outside
// [0, Len()); indexing past the live range is a caller bug.
func (v *Vector[T]) At(index int) *T {
	if index < 0 || index >= v.size {
		panic(fmt.Sprintf("vectorx: index %d out of range [0, %d)", index, v.size))
	}
	return v.store.Slot(index)
}

// Slice returns the contiguous window over the live elements. It
// aliases the vector's storage: any operation that reallocates,
// shifts, or resizes invalidates it.
func (v *Vector[T]) Slice() []T {
	return v.live()
}

// All iterates index/value pairs over the live elements.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.store.Slot(i)) {
				return
			}
		}
	}
}

// Values iterates the live elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.store.Slot(i)) {
				return
			}
		}
	}
}

// Clone copy-constructs an independent vector with capacity exactly
// Len(). All-or-nothing: a failing element clone tears down the
// partial copy and leaves the receiver untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	store, err := NewRawStorage[T](v.store.allocator(), v.size)
	if err != nil {
		return nil, err
	}
	if err := cloneSlots(store.From(0), v.live()); err != nil {
		store.Release()
		return nil, err
	}
	return &Vector[T]{store: store, size: v.size}, nil
}

// Move transfers the receiver's storage and elements into a fresh
// vector in constant time, leaving the receiver empty with zero
// capacity.
func (v *Vector[T]) Move() *Vector[T] {
	out := NewWith[T](v.store.allocator())
	out.Swap(v)
	return out
}

// Swap exchanges storage and size with other in constant time.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.store.Swap(&other.store)
	v.size, other.size = other.size, v.size
}

// MoveFrom move-assigns src into the receiver by swapping, in
// constant time. Afterwards src holds the receiver's former contents;
// destroy or reuse it as needed. Safe against self-assignment.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Swap(src)
}

// Assign copy-assigns rhs into the receiver.
//
// When rhs does not fit in the current capacity a full temporary copy
// is built and swapped in, so a failure preserves the old state. When
// it fits, existing storage is reused without reallocation: the
// overlapping prefix is overwritten, surplus elements destroyed or
// extra elements copied in. For Cloner types the in-place path clones
// everything into scratch first and commits only on full success.
// The receiver keeps its own allocator on both paths.
func (v *Vector[T]) Assign(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	if rhs.size > v.store.Capacity() {
		store, err := NewRawStorage[T](v.store.allocator(), rhs.size)
		if err != nil {
			return err
		}
		if err := cloneSlots(store.From(0), rhs.live()); err != nil {
			store.Release()
			return err
		}
		tmp := Vector[T]{store: store, size: rhs.size}
		v.Swap(&tmp)
		tmp.Destroy()
		return nil
	}
	if isCloner[T]() {
		// Scratch is transient working space, not element storage.
		scratch := make([]T, rhs.size)
		if err := cloneSlots(scratch, rhs.live()); err != nil {
			return err
		}
		destroySlots(v.live())
		moveSlots(v.store.From(0)[:rhs.size], scratch)
		v.size = rhs.size
		return nil
	}
	n := min(v.size, rhs.size)
	copy(v.live()[:n], rhs.live()[:n])
	if rhs.size < v.size {
		destroySlots(v.live()[rhs.size:])
	} else {
		copy(v.store.From(v.size)[:rhs.size-v.size], rhs.live()[v.size:])
	}
	v.size = rhs.size
	return nil
}

// Reserve grows capacity to at least n, relocating live elements into
// the new block. No-op when capacity already suffices; capacity never
// shrinks. On failure the vector is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.store.Capacity() {
		return nil
	}
	ns, err := NewRawStorage[T](v.store.allocator(), n)
	if err != nil {
		return err
	}
	if err := relocateSlots(ns.From(0)[:v.size], v.live()); err != nil {
		ns.Release()
		return err
	}
	finishRelocation(v.live())
	v.store.Swap(&ns)
	ns.Release()
	return nil
}

// Resize sets the live count to n: shrinking destroys the trailing
// elements, growing reserves capacity then default-constructs the new
// tail. The size is updated last, so it never exceeds capacity at any
// observable point.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vectorx: negative size %d", n))
	}
	if n < v.size {
		destroySlots(v.live()[n:])
		v.size = n
		return nil
	}
	if n > v.store.Capacity() {
		if err := v.Reserve(n); err != nil {
			return err
		}
	}
	defaultConstructSlots(v.store.From(v.size)[:n-v.size])
	v.size = n
	return nil
}

// PushBack appends a copy of value (a clone for Cloner types) and
// returns the appended element. Amortized constant time; grows to
// max(1, Len()*2) on overflow.
func (v *Vector[T]) PushBack(value T) (*T, error) {
	return v.Emplace(v.size, cloneConstructor(&value))
}

// PushBackMove appends value, transferring ownership without cloning.
func (v *Vector[T]) PushBackMove(value T) (*T, error) {
	return v.InsertMove(v.size, value)
}

// EmplaceBack appends an element constructed in place by construct,
// which receives the target slot. On error the constructor must leave
// the slot free of owned resources; the vector is unchanged.
func (v *Vector[T]) EmplaceBack(construct func(*T) error) (*T, error) {
	return v.Emplace(v.size, construct)
}

// PopBack destroys and removes the last element. Popping an empty
// vector is a deliberate no-op, not an error.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		return
	}
	destroySlot(v.store.Slot(v.size - 1))
	v.size--
}

// Insert places a copy of value at pos, shifting later elements one
// slot toward the end. pos may equal Len(), meaning append. Panics on
// a position outside [0, Len()].
func (v *Vector[T]) Insert(pos int, value T) (*T, error) {
	return v.Emplace(pos, cloneConstructor(&value))
}

// InsertMove places value at pos without cloning, transferring
// ownership into the vector.
func (v *Vector[T]) InsertMove(pos int, value T) (*T, error) {
	return v.Emplace(pos, func(slot *T) error {
		*slot = value
		return nil
	})
}

// Emplace constructs a new element at pos via construct, shifting
// later elements one slot toward the end. pos may equal Len().
//
// With spare capacity the insert is in place: appends construct
// directly at the end; interior inserts construct into a temporary,
// move the last element into the fresh end slot, shift the
// intervening range backward, then move the temporary into pos, so no
// live element is read after being overwritten. Without spare
// capacity the element is constructed at its final position in a new
// block before the prefix and suffix are relocated around it; old
// elements are destroyed only after the new state fully exists.
func (v *Vector[T]) Emplace(pos int, construct func(*T) error) (*T, error) {
	if pos < 0 || pos > v.size {
		panic(fmt.Sprintf("vectorx: insert position %d out of range [0, %d]", pos, v.size))
	}
	if v.size < v.store.Capacity() {
		slots := v.store.From(0)
		if pos == v.size {
			if err := construct(&slots[pos]); err != nil {
				var zero T
				slots[pos] = zero
				return nil, err
			}
		} else {
			var tmp T
			if err := construct(&tmp); err != nil {
				return nil, err
			}
			slots[v.size] = slots[v.size-1]
			for i := v.size - 1; i > pos; i-- {
				slots[i] = slots[i-1]
			}
			slots[pos] = tmp
		}
		v.size++
		return &slots[pos], nil
	}

	ns, err := NewRawStorage[T](v.store.allocator(), grownCapacity(v.size))
	if err != nil {
		return nil, err
	}
	nslots := ns.From(0)
	if err := construct(&nslots[pos]); err != nil {
		ns.Release()
		return nil, err
	}
	old := v.live()
	if err := relocateSlots(nslots[:pos], old[:pos]); err != nil {
		destroySlot(&nslots[pos])
		ns.Release()
		return nil, err
	}
	if err := relocateSlots(nslots[pos+1:pos+1+v.size-pos], old[pos:]); err != nil {
		destroySlots(nslots[:pos])
		destroySlot(&nslots[pos])
		ns.Release()
		return nil, err
	}
	finishRelocation(old)
	v.store.Swap(&ns)
	ns.Release()
	v.size++
	return &nslots[pos], nil
}

// Erase destroys the element at pos and shifts all later elements one
// slot toward the front. Panics on a position outside [0, Len()).
func (v *Vector[T]) Erase(pos int) {
	if pos < 0 || pos >= v.size {
		panic(fmt.Sprintf("vectorx: erase position %d out of range [0, %d)", pos, v.size))
	}
	slots := v.live()
	destroySlot(&slots[pos])
	for i := pos; i < v.size-1; i++ {
		slots[i] = slots[i+1]
	}
	// The last slot now duplicates its left neighbour; clear it
	// without a destroy hook, ownership stayed with the neighbour.
	var zero T
	slots[v.size-1] = zero
	v.size--
}

// Destroy tears the vector down: every live element is destroyed in
// order and the storage released. The vector is reusable afterwards
// as an empty vector.
func (v *Vector[T]) Destroy() {
	destroySlots(v.live())
	v.size = 0
	v.store.Release()
}

func (v *Vector[T]) live() []T {
	if v.size == 0 {
		return nil
	}
	return v.store.From(0)[:v.size]
}

// grownCapacity doubles on overflow, minimum 1.
func grownCapacity(size int) int {
	if size == 0 {
		return 1
	}
	return size * 2
}
