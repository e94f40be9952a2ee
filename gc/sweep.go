package gc

import (
	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// Reclaimer is the allocator-shaped surface Sweep needs: enumerate every
// object currently in use and return unreachable ones to their freelist. heap.Allocator
// satisfies this directly; tests substitute a fake to exercise Sweep in
// isolation.
type Reclaimer interface {
	LiveObjects() []*heap.Object
	Reclaim(*heap.Object)
}

// SweepStats reports what one sweep pass did, for gc.Stats/the CLI's
// -stats output (QV4_MM_STATS).
type SweepStats struct {
	Swept     int
	Reclaimed int
}

// Sweep walks every object the allocator reports as in use. An object
// still carrying the mark bit survives, has its bit cleared for the next
// cycle, and is left alone; everything else is destroyed and returned to
// its freelist: a single pass, no compaction, no relocation — a free
// slot's address never changes.
func Sweep(objects Reclaimer) SweepStats {
	var stats SweepStats
	for _, obj := range objects.LiveObjects() {
		stats.Swept++
		if obj.Marked() {
			obj.SetMarked(false)
			continue
		}
		objects.Reclaim(obj)
		stats.Reclaimed++
	}
	return stats
}

// SweepWeakHandles clears any weak root whose referent did not survive the
// preceding mark phase. The mark bits it reads are the ones Mark just set;
// Sweep clears them again on its own pass, so callers must run this
// between Mark and Sweep, never after.
func SweepWeakHandles(handles *HandleTable) {
	if handles == nil {
		return
	}
	for _, h := range handles.weak {
		m, ok := h.value.AsManaged()
		if ok && !m.Marked() {
			h.value = shape.Undefined
		}
	}
}
