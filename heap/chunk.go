package heap

import (
	"sort"

	"github.com/cznic/sortutil"

	"github.com/neuroradiology/qtdeclarative/pagealloc"
)

// chunk is one contiguous page-allocator allocation subdivided into
// same-size-class Objects.
//
// This is a precise collector: the mark stack is driven by typed
// shape.Value/shape.Markable references, never by scanning raw memory for
// pointer-shaped bit patterns, so a chunk's role here is bookkeeping and
// sweep traversal, not address-range containment lookup — Go's own object
// graph already tells the collector exactly what is reachable.
type chunk struct {
	alloc     pagealloc.Alloc
	sizeClass int
	objects   []*Object
}

func (c *chunk) base() uintptr { return c.alloc.Base() }

// chunkRegistry keeps every live chunk ordered by base address, for
// deterministic sweep order and for the stats the gc package reports. The
// sort key is kept as a sortutil.Int64Slice so the ordering reuses a
// vetted int64 comparator rather than hand-rolling one more.
type chunkRegistry struct {
	bases   sortutil.Int64Slice
	byBase  map[int64]*chunk
}

func newChunkRegistry() *chunkRegistry {
	return &chunkRegistry{byBase: make(map[int64]*chunk)}
}

func (r *chunkRegistry) insert(c *chunk) {
	b := int64(c.base())
	r.bases = append(r.bases, b)
	r.byBase[b] = c
	sort.Sort(r.bases)
}

func (r *chunkRegistry) remove(c *chunk) {
	b := int64(c.base())
	delete(r.byBase, b)
	for i, v := range r.bases {
		if v == b {
			r.bases = append(r.bases[:i], r.bases[i+1:]...)
			break
		}
	}
}

// ordered returns every chunk in base-address order.
func (r *chunkRegistry) ordered() []*chunk {
	out := make([]*chunk, 0, len(r.bases))
	for _, b := range r.bases {
		out = append(out, r.byBase[b])
	}
	return out
}

func (r *chunkRegistry) len() int { return len(r.bases) }
