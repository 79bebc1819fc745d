package vectorx

// Placement primitives: construct, destroy, and relocate values within
// slots, kept orthogonal to allocation. A slot outside the live range
// is always zero, so "default-construct" is a zeroing no-op and a
// destroyed slot drops every reference it held.

// destroySlot runs the element's destroy hook, if any, then zeroes the
// slot. Memory is not released.
func destroySlot[T any](slot *T) {
	if d, ok := any(slot).(Destroyer); ok {
		d.Destroy()
	} else if d, ok := any(*slot).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*slot = zero
}

// destroySlots destroys each slot in order.
func destroySlots[T any](slots []T) {
	for i := range slots {
		destroySlot(&slots[i])
	}
}

// defaultConstructSlots establishes zero-valued live elements.
func defaultConstructSlots[T any](slots []T) {
	clear(slots)
}

// cloneSlot duplicates a value, through Clone when T carries one.
func cloneSlot[T any](src *T) (T, error) {
	if c, ok := any(src).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(*src).(Cloner[T]); ok {
		return c.Clone()
	}
	return *src, nil
}

// cloneConstructor builds a slot constructor that clones *src on
// invocation. Copy-inserts use it so the clone is made only once the
// target slot exists: a failed growth allocation never builds a clone,
// and a failed relocation destroys the slot's clone exactly once
// through the normal rollback.
func cloneConstructor[T any](src *T) func(*T) error {
	return func(slot *T) error {
		c, err := cloneSlot(src)
		if err != nil {
			return err
		}
		*slot = c
		return nil
	}
}

// cloneSlots clones src into dst element-wise. On failure the clones
// already constructed in dst are destroyed and src is left untouched.
// len(dst) >= len(src).
func cloneSlots[T any](dst, src []T) error {
	for i := range src {
		v, err := cloneSlot(&src[i])
		if err != nil {
			destroySlots(dst[:i])
			return err
		}
		dst[i] = v
	}
	return nil
}

// moveSlots transfers src into dst by assignment, zeroing each source
// slot as ownership leaves it. Cannot fail. dst and src must not
// overlap; len(dst) >= len(src).
func moveSlots[T any](dst, src []T) {
	var zero T
	for i := range src {
		dst[i] = src[i]
		src[i] = zero
	}
}

// relocateSlots transfers live elements from src into dst using the
// element type's strategy: assignment (infallible, src zeroed) or
// Clone (fallible, src untouched until finishRelocation). On a clone
// failure dst holds no live elements and src is intact.
//
// The split between relocateSlots and finishRelocation is what gives
// multi-range relocations (insert with growth) strong safety: no
// source element is destroyed until every destination element exists.
func relocateSlots[T any](dst, src []T) error {
	if assignRelocates[T]() {
		moveSlots(dst, src)
		return nil
	}
	return cloneSlots(dst, src)
}

// finishRelocation destroys the source elements of a completed
// clone-relocation. No-op for assignment-relocated types, whose
// source slots are already zero.
func finishRelocation[T any](src []T) {
	if !assignRelocates[T]() {
		destroySlots(src)
	}
}
