package gc

import "github.com/neuroradiology/qtdeclarative/shape"

// deepMarkable is any Markable that also knows how to mark its own
// referents: heap.Object, errobj.Error (which wraps a heap.Object and
// defines its own Mark) and errobj's managed string box. Asserting
// against this small interface instead of the concrete *heap.Object type
// lets drain handle any such type without gc importing every
// managed-type package individually.
type deepMarkable interface {
	Mark(shape.Tracer)
}

// MarkStack is the explicit worklist used in place of recursive marking:
// a dedicated slice that is reused, not reallocated, across collections.
// It implements shape.Tracer.
type MarkStack struct {
	items []shape.Markable
}

// Push implements shape.Tracer. Marking is idempotent: a caller is
// expected to have already checked Marked() before pushing (heap.Object.Mark
// does this for itself and for every shape.Value slot it owns), so Push
// itself does no redundant check — it only appends.
func (s *MarkStack) Push(m shape.Markable) {
	s.items = append(s.items, m)
}

func (s *MarkStack) pop() (shape.Markable, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	m := s.items[n-1]
	s.items = s.items[:n-1]
	return m, true
}

// reset truncates the stack to length 0 without releasing its backing
// array, so the next collection reuses the same allocation.
func (s *MarkStack) reset() {
	s.items = s.items[:0]
}

// drain pops every item off the stack, marking it and pushing its
// children, until the stack is empty.
func (s *MarkStack) drain() {
	for {
		m, ok := s.pop()
		if !ok {
			return
		}
		if obj, ok := m.(deepMarkable); ok {
			obj.Mark(s)
			continue
		}
		// Markables without a Mark method (test doubles) are
		// responsible for marking themselves before being pushed;
		// nothing further to do here.
	}
}

// Roots is everything Mark walks at the start of a collection: the
// handle table's persistent roots, plus any additional ad-hoc root values
// the caller supplies (e.g. values currently live on an interpreter stack,
// out of scope for this module but accepted here so a host can wire one
// in without touching this package).
type Roots struct {
	Handles *HandleTable
	Extra   []shape.Value
}

// Mark walks every root, driving the explicit mark stack to a fixed
// point. Weak handles are deliberately excluded from the root walk (see
// WeakHandle's doc comment); Sweep is what reconciles them afterward.
func Mark(stack *MarkStack, roots Roots) {
	stack.reset()
	if roots.Handles != nil {
		for _, h := range roots.Handles.persistent {
			if h.freed {
				continue
			}
			h.value.Mark(stack)
		}
	}
	for _, v := range roots.Extra {
		v.Mark(stack)
	}
	stack.drain()
}
