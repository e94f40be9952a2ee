package heap

import (
	"github.com/cznic/mathutil"

	"github.com/neuroradiology/qtdeclarative/pagealloc"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// defaultChunkPages is the page count of the first chunk requested for a
// size class; subsequent chunks for the same class double, capped by
// maxChunkShift.
const defaultChunkPages = 1

// valueSlotBytes is the byte size accounted for one property slot: one
// tagged 64-bit value word.
const valueSlotBytes = 8

// Allocator is a size-classed, non-moving allocator that recycles
// fixed-size slots via per-class freelists and falls back to a dedicated
// chunk for anything above largeObjectThreshold.
type Allocator struct {
	pages *pagealloc.Allocator

	freelists     [len(sizeClasses)][]*Object
	chunkPages    [len(sizeClasses)]int
	registry      *chunkRegistry
	largeChunks   *chunkRegistry
	maxChunkShift int

	allocCount int64
	liveBytes  int64
}

// NewAllocator creates an Allocator backed by pages. maxChunkShift bounds
// how many times a size class's chunk request may double
// (QV4_MM_MAXBLOCK_SHIFT); 0 means "use the module default of 6", and
// values above 11 are capped at 11.
func NewAllocator(pages *pagealloc.Allocator, maxChunkShift int) *Allocator {
	if maxChunkShift <= 0 {
		maxChunkShift = 6
	}
	maxChunkShift = mathutil.Min(maxChunkShift, 11)
	a := &Allocator{
		pages:         pages,
		registry:      newChunkRegistry(),
		largeChunks:   newChunkRegistry(),
		maxChunkShift: maxChunkShift,
	}
	for i := range a.chunkPages {
		a.chunkPages[i] = defaultChunkPages
	}
	return a
}

// Alloc returns a fresh Object whose Slots can hold at least size values,
// reusing a freelist entry if one exists for the size class that fits
// size*valueSlotBytes bytes, else carving a new one out of a (possibly
// freshly-grown) chunk.
func (a *Allocator) Alloc(class *shape.Class, size int) *Object {
	nbytes := size * valueSlotBytes
	a.allocCount++
	a.liveBytes += int64(nbytes)

	sc := classForSize(nbytes)
	if sc < 0 {
		return a.allocLarge(class, size)
	}

	if len(a.freelists[sc]) == 0 {
		a.growChunk(sc)
	}
	n := len(a.freelists[sc])
	obj := a.freelists[sc][n-1]
	a.freelists[sc] = a.freelists[sc][:n-1]
	obj.class = class
	obj.Slots = make([]shape.Value, size)
	obj.marked = false
	return obj
}

// allocLarge services the > largeObjectThreshold path: one dedicated
// page-allocator chunk per object, never pooled, tracked individually.
func (a *Allocator) allocLarge(class *shape.Class, size int) *Object {
	npages := pagesFor(size * valueSlotBytes)
	alloc := a.pages.Allocate(npages)
	c := &chunk{alloc: alloc, sizeClass: -1}
	obj := &Object{class: class, Slots: make([]shape.Value, size), chunk: c, sizeClass: -1}
	c.objects = []*Object{obj}
	a.largeChunks.insert(c)
	return obj
}

// growChunk allocates one more chunk for size class sc, subdividing it
// into fresh Objects and pushing all of them onto the class's freelist.
// The chunk's page count doubles each time this size class needs to grow
// again, capped at 1<<maxChunkShift, then reused at that ceiling.
func (a *Allocator) growChunk(sc int) {
	npages := a.chunkPages[sc]
	alloc := a.pages.Allocate(npages)
	c := &chunk{alloc: alloc, sizeClass: sc}

	itemsPerChunk := mathutil.Max(1, (npages*pagealloc.PageSize)/classByteSize(sc))
	c.objects = make([]*Object, 0, itemsPerChunk)
	for i := 0; i < itemsPerChunk; i++ {
		obj := &Object{chunk: c, sizeClass: sc}
		c.objects = append(c.objects, obj)
		a.freelists[sc] = append(a.freelists[sc], obj)
	}
	a.registry.insert(c)

	ceiling := 1 << uint(a.maxChunkShift)
	a.chunkPages[sc] = mathutil.Min(npages*2, ceiling)
}

func pagesFor(size int) int {
	n := (size + pagealloc.PageSize - 1) / pagealloc.PageSize
	return mathutil.Max(1, n)
}

// Reclaim returns obj to its size class's freelist (or releases its
// dedicated chunk, if it was a large object), run by the gc package's
// sweep once obj is confirmed unreachable.
func (a *Allocator) Reclaim(obj *Object) {
	a.liveBytes -= int64(len(obj.Slots) * valueSlotBytes)
	obj.destroy()
	if obj.sizeClass < 0 {
		if obj.chunk != nil {
			a.largeChunks.remove(obj.chunk)
			a.pages.Release(obj.chunk.alloc)
		}
		return
	}
	a.freelists[obj.sizeClass] = append(a.freelists[obj.sizeClass], obj)
}

// LiveObjects returns every Object currently handed out by Alloc across
// every chunk (both recycled-pool and large), for the gc package's sweep
// to walk. Objects sitting on a freelist (never handed out, or destroyed
// by Reclaim) have nil Slots and are left out.
func (a *Allocator) LiveObjects() []*Object {
	var out []*Object
	for _, c := range a.registry.ordered() {
		for _, obj := range c.objects {
			if obj.Slots != nil {
				out = append(out, obj)
			}
		}
	}
	for _, c := range a.largeChunks.ordered() {
		out = append(out, c.objects...)
	}
	return out
}

// Stats reports simple allocator counters for the gc package's GC stats
// dump (QV4_MM_STATS).
type Stats struct {
	AllocCount       int64
	LiveBytes        int64
	PagesOutstanding int64
	BytesOutstanding int64
	Chunks           int
}

func (a *Allocator) Stats() Stats {
	return Stats{
		AllocCount:       a.allocCount,
		LiveBytes:        a.liveBytes,
		PagesOutstanding: a.pages.PagesOutstanding(),
		BytesOutstanding: a.pages.BytesOutstanding(),
		Chunks:           a.registry.len() + a.largeChunks.len(),
	}
}
