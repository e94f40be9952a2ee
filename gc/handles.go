// Package gc implements the mark and sweep phases, the persistent/weak
// external handle tables roots are found through, and the GC-blocked
// nesting counter that defers collection while the engine is
// mid-operation.
package gc

import "github.com/neuroradiology/qtdeclarative/shape"

// PersistentHandle is an external, engine-lifetime-scoped root: anything
// the host program keeps a reference to outside of the JS stack/heap. The
// mark phase walks every persistent handle unconditionally on every
// collection.
type PersistentHandle struct {
	value shape.Value
	freed bool
}

// Set updates the handle's referent.
func (h *PersistentHandle) Set(v shape.Value) { h.value = v }

// Value returns the handle's current referent.
func (h *PersistentHandle) Value() shape.Value { return h.value }

// WeakHandle is a root that does not itself keep its referent alive: the
// mark phase never pushes a WeakHandle's value, and sweep clears any
// WeakHandle whose referent turned out to be unmarked.
type WeakHandle struct {
	value shape.Value
}

// Value returns the handle's current referent, or shape.Undefined once
// the collector has cleared it because the referent was collected.
func (h *WeakHandle) Value() shape.Value { return h.value }

// HandleTable owns every persistent and weak handle the engine has
// created, and is consulted by Mark/Sweep as the collector's root set.
type HandleTable struct {
	persistent []*PersistentHandle
	weak       []*WeakHandle
}

// NewPersistent allocates a new persistent root initialized to v.
func (t *HandleTable) NewPersistent(v shape.Value) *PersistentHandle {
	h := &PersistentHandle{value: v}
	t.persistent = append(t.persistent, h)
	return h
}

// NewWeak allocates a new weak root initialized to v.
func (t *HandleTable) NewWeak(v shape.Value) *WeakHandle {
	h := &WeakHandle{value: v}
	t.weak = append(t.weak, h)
	return h
}

// FreePersistent releases a persistent root; it is no longer marked on
// future collections.
func (t *HandleTable) FreePersistent(h *PersistentHandle) {
	h.freed = true
	for i, p := range t.persistent {
		if p == h {
			t.persistent = append(t.persistent[:i], t.persistent[i+1:]...)
			return
		}
	}
}
