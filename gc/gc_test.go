package gc

import (
	"testing"

	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/pagealloc"
	"github.com/neuroradiology/qtdeclarative/shape"
)

func newTestCollector() (*Collector, *shape.Class) {
	pages := pagealloc.New(nil)
	alloc := heap.NewAllocator(pages, 4)
	policy := NewPolicy(1<<20, false)
	return NewCollector(alloc, policy), shape.NewPool().Empty
}

func TestMarkKeepsReachableObjectsAlive(t *testing.T) {
	c, class := newTestCollector()

	root := c.Allocator.Alloc(class, 1)
	h := c.Handles.NewPersistent(shape.FromManaged(root))

	c.Collect(nil)

	if root.Marked() {
		t.Fatalf("Marked bit should be cleared again after Sweep, got true")
	}
	if _, ok := h.Value().AsManaged(); !ok {
		t.Fatalf("persistent handle lost its referent after a collection")
	}
}

func TestSweepReclaimsUnreachableObjects(t *testing.T) {
	c, class := newTestCollector()

	c.Allocator.Alloc(class, 1) // unreachable: nothing roots it

	before := c.Allocator.Stats().LiveBytes
	stats := c.Collect(nil)
	_ = before

	if stats.Reclaimed == 0 {
		t.Fatalf("expected at least one object to be reclaimed, got 0")
	}
}

func TestWeakHandleClearedWhenUnreachable(t *testing.T) {
	c, class := newTestCollector()
	obj := c.Allocator.Alloc(class, 1)
	weak := c.Handles.NewWeak(shape.FromManaged(obj))

	c.Collect(nil)

	if _, ok := weak.Value().AsManaged(); ok {
		t.Fatalf("weak handle still resolves to its referent after the referent became unreachable")
	}
}

func TestBlockerPreventsCollection(t *testing.T) {
	c, class := newTestCollector()
	c.Allocator.Alloc(class, 1)

	c.Blocker.Enter()
	defer c.Blocker.Leave()

	c.Policy.Aggressive = true
	if c.Policy.ShouldCollect(c.Blocker) {
		t.Fatalf("ShouldCollect returned true while GC-blocked")
	}
}

func TestPolicyGrowthThreshold(t *testing.T) {
	p := NewPolicy(100, false)
	if p.ShouldCollect(nil) {
		t.Fatalf("fresh policy with no allocations should not request a collection")
	}
	p.RecordAllocation(150)
	if !p.ShouldCollect(nil) {
		t.Fatalf("policy should request a collection once the growth threshold is exceeded")
	}
	p.NoteCollected()
	if p.ShouldCollect(nil) {
		t.Fatalf("NoteCollected should reset the growth counter")
	}
}

func TestLeaveWithoutEnterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Leave without a matching Enter should panic")
		}
	}()
	var b Blocker
	b.Leave()
}
