// Package heap implements the managed object header every GC-visible
// allocation carries, and the size-classed allocator that hands out and
// reclaims storage for them.
//
// A JS engine's object header is typically followed in memory by whatever
// the concrete type needs (property value slots, for instance). Go has no
// flexible array members and no unions, so this package splits that into
// two pieces: a uniform control block (Object, below) that the
// allocator's freelists recycle by size class, and an ordinary slice
// (Object.Slots) for the property-value storage that would otherwise
// follow the header.
package heap

import "github.com/neuroradiology/qtdeclarative/shape"

// Object is the header every heap-allocated, GC-managed value carries.
// It implements shape.Markable so the gc package can mark/sweep it
// without heap importing gc (which would cycle back: gc needs to call
// into object-specific markObjects/destroy via the vtable, and those are
// reached only through shape.Markable/VTable).
type Object struct {
	class  *shape.Class
	marked bool

	// Slots holds the object's property values, indexed exactly as
	// class.Find resolves them. Stands in for the C++ tail allocation.
	Slots []shape.Value

	// chunk and class index back-references used by the allocator to
	// return this Object to the correct freelist on sweep.
	chunk     *chunk
	sizeClass int
}

// Marked reports the current GC mark bit.
func (o *Object) Marked() bool { return o.marked }

// SetMarked sets the GC mark bit.
func (o *Object) SetMarked(v bool) { o.marked = v }

// ClassOf returns the object's current shape.
func (o *Object) ClassOf() *shape.Class { return o.class }

// SetClass installs a new shape, used whenever a transition
// (AddMember/RemoveMember/ChangeVTable) moves the object to a new Class.
func (o *Object) SetClass(c *shape.Class) { o.class = c }

// Mark marks o itself and asks its vtable (if any) to push its own
// referents onto tracer.
func (o *Object) Mark(tracer shape.Tracer) {
	if o.marked {
		return
	}
	o.marked = true
	if o.class != nil && o.class.VTable() != nil && o.class.VTable().MarkObjects != nil {
		o.class.VTable().MarkObjects(o, tracer)
	}
	for _, v := range o.Slots {
		v.Mark(tracer)
	}
}

// destroy runs the vtable's Destroy hook (if any) and releases the
// object's shape. Called by the allocator when sweep reclaims o.
func (o *Object) destroy() {
	if o.class != nil {
		if o.class.VTable() != nil && o.class.VTable().Destroy != nil {
			o.class.VTable().Destroy(o)
		}
	}
	o.class = nil
	o.Slots = nil
}
