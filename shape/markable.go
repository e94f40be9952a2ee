package shape

// Markable is the minimal surface the collector needs from a managed
// object, without shape importing the heap package that actually defines
// the object header (that would be a cyclic import: heap.Object needs
// *Class, Class's VTable needs to call back into a managed object). The
// collector must be able to find markObjects and destroy from the
// object's header alone, polymorphism via a vtable struct rather than Go
// interface embedding — Markable is exactly that minimal header view.
type Markable interface {
	// Marked reports the current mark bit.
	Marked() bool
	// SetMarked sets the mark bit.
	SetMarked(bool)
	// ClassOf returns the object's current shape.
	ClassOf() *Class
}

// Tracer is what a markObjects implementation pushes newly-discovered
// children onto — the mark stack. Push must be idempotent: pushing an
// already-marked value is a no-op, since marking checks the mark bit
// before pushing.
type Tracer interface {
	Push(Markable)
}

// VTable is the per-type operation table every managed type supplies. It
// is stored on the Class, not on the object, so that dispatch is
// "virtual" via an explicit function-pointer struct rather than Go
// interface/embedding-based polymorphism.
//
// Of the property-operation set an interpreter (out of scope here) would
// dispatch through (get/put/getIndexed/...), only IsEqualTo is carried;
// the others are not part of this struct.
type VTable struct {
	// Name is a human-readable type tag; nothing in this module reads it.
	Name string

	// MarkObjects marks every Markable this object references, pushing
	// unmarked children onto tracer via Tracer.Push. Required.
	MarkObjects func(self Markable, tracer Tracer)

	// Destroy runs any type-specific cleanup before the slot is zeroed on
	// sweep. Optional; nil means "nothing to do".
	Destroy func(self Markable)

	// IsEqualTo implements the engine-level equality used by
	// Object.sameValue-style comparisons; optional.
	IsEqualTo func(self, other Markable) bool
}
