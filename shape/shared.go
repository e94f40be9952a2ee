package shape

// sharedData is the refcounted, copy-on-write backing array behind
// Class.nameMap and Class.propertyData: mutations clone on write, and
// children share prefixes of their parent's arrays rather than each
// carrying a private copy.
//
// A new Class created via AddMember starts by retaining its parent's
// sharedData; since the parent itself still holds that same reference,
// the refcount is never back down to 1 at the moment of the write, so the
// child always clones before appending its new slot. The clone shares the
// parent's array *content* (same prefix bytes) without sharing the same
// mutable object, which is what keeps the parent's own view stable.
type sharedData[T any] struct {
	refCount int
	data     []T
}

func newSharedData[T any]() *sharedData[T] {
	return &sharedData[T]{refCount: 1}
}

// retain returns s with its refcount bumped, for a new Class that will
// share this array unless/until it needs to write to it.
func (s *sharedData[T]) retain() *sharedData[T] {
	s.refCount++
	return s
}

// add stores value at index, growing the array if index == len(data).
// Returns the sharedData the caller should keep using from now on: either
// s itself (exclusively owned) or a fresh clone (s was shared and this
// write, in place or appended, would otherwise be visible to other
// Classes still retaining it).
func (s *sharedData[T]) add(index int, value T) *sharedData[T] {
	if s.refCount > 1 {
		clone := &sharedData[T]{refCount: 1, data: append([]T(nil), s.data...)}
		s.refCount--
		s = clone
	}
	if index < len(s.data) {
		s.data[index] = value
		return s
	}
	s.data = append(s.data, value)
	return s
}

func (s *sharedData[T]) at(index int) T {
	return s.data[index]
}

// release drops this owner's share. The backing array has no finalizer of
// its own (Go's GC reclaims it once unreferenced); release exists so
// Class.Destroy's bookkeeping stays symmetric with retain.
func (s *sharedData[T]) release() {
	s.refCount--
}

func (s *sharedData[T]) len() int { return len(s.data) }
