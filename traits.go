package vectorx

// Capability interfaces on element types. They are method-set queries
// on the static element type T (or *T); a capability carried only by
// dynamic values inside an interface-typed T is not seen.

// Cloner is implemented by element types whose duplication requires a
// deep copy. Clone may fail; any bulk operation that clones rolls
// back fully on the first failure.
//
// A type implementing Cloner is relocated by Clone during growth
// unless it also implements Movable.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Movable marks a Cloner type whose values may nevertheless be
// relocated by plain assignment: moving the bits transfers ownership
// safely even though duplication needs Clone. Types without Clone are
// always relocated by assignment and need no marker.
type Movable interface {
	MovableByAssign()
}

// Destroyer is implemented by element types that must release
// resources when a live element is removed from a Vector. Destroy
// runs exactly once per removed element.
type Destroyer interface {
	Destroy()
}

func isCloner[T any]() bool {
	var zero T
	if _, ok := any(&zero).(Cloner[T]); ok {
		return true
	}
	_, ok := any(zero).(Cloner[T])
	return ok
}

func isMovable[T any]() bool {
	var zero T
	if _, ok := any(&zero).(Movable); ok {
		return true
	}
	_, ok := any(zero).(Movable)
	return ok
}

// assignRelocates reports whether relocation for T is plain
// assignment (never fails) rather than element-wise Clone.
func assignRelocates[T any]() bool {
	return !isCloner[T]() || isMovable[T]()
}
