package shape

import "github.com/neuroradiology/qtdeclarative/ident"

// hashPrimeDeltas gives prime-ish table sizes: table sizes are
// 2^n + hashPrimeDeltas[n]. ident.Table keeps its own identical copy
// rather than sharing one — the two tables intern/index different key
// spaces and are deliberately kept as separate collaborators rather than
// one shared implementation.
var hashPrimeDeltas = [32]uint8{
	0, 0, 1, 3, 1, 5, 3, 3, 1, 9, 7, 5, 3, 9, 25, 3,
	1, 21, 3, 21, 7, 15, 9, 5, 3, 29, 15, 0, 0, 0, 0, 0,
}

func hashPrimeForBits(numBits int) int {
	return (1 << uint(numBits)) + int(hashPrimeDeltas[numBits])
}

type hashEntry struct {
	id    *ident.Identifier
	index uint32
}

// propertyHash is an open-addressed, linear-probed table mapping an
// interned Identifier pointer to the slot index it occupies in a Class.
// It is itself a refcounted, COW structure: Class.propertyTable is shared
// by every Class along a transition chain until one of them needs to grow
// or shrink it.
type propertyHash struct {
	data *hashTableData
}

type hashTableData struct {
	refCount int
	numBits  int
	entries  []hashEntry // len == alloc; entries[i].id == nil means empty
	size     int         // classSize at the last rebuild plus one per entry inserted since; compared with classSize to detect a shrink
}

func newPropertyHash() propertyHash {
	return propertyHash{data: &hashTableData{refCount: 1, numBits: 4, entries: make([]hashEntry, hashPrimeForBits(4))}}
}

// retain shares this table with a new owner (a child Class that has not
// yet mutated it).
func (h propertyHash) retain() propertyHash {
	h.data.refCount++
	return h
}

func (h propertyHash) release() {
	h.data.refCount--
}

// lookup returns the slot index for id, or (0, false) if absent.
func (h propertyHash) lookup(id *ident.Identifier) (uint32, bool) {
	d := h.data
	alloc := len(d.entries)
	idx := int(id.HashValue) % alloc
	for {
		e := d.entries[idx]
		if e.id == id {
			return e.index, true
		}
		if e.id == nil {
			return 0, false
		}
		idx++
		if idx == alloc {
			idx = 0
		}
	}
}

// addEntry inserts id -> index, growing the table when it would exceed 50%
// load, and rebuilding (dropping stale entries whose index now falls
// outside classSize) whenever the caller's Class has shrunk below what
// this table remembers. Returns the (possibly new, now exclusively owned)
// propertyHash the caller must use from here on.
func (h propertyHash) addEntry(id *ident.Identifier, index uint32, classSize int) propertyHash {
	d := h.data
	grow := len(d.entries) <= d.size*2

	if classSize < d.size || grow || d.refCount > 1 {
		numBits := d.numBits
		if grow {
			numBits++
		}
		nd := &hashTableData{refCount: 1, numBits: numBits, entries: make([]hashEntry, hashPrimeForBits(numBits))}
		for _, e := range d.entries {
			if e.id == nil || int(e.index) >= classSize {
				continue
			}
			insertInto(nd, e.id, e.index)
		}
		nd.size = classSize
		d.refCount--
		h = propertyHash{data: nd}
		d = nd
	}

	insertInto(d, id, index)
	d.size++
	return h
}

func insertInto(d *hashTableData, id *ident.Identifier, index uint32) {
	alloc := len(d.entries)
	idx := int(id.HashValue) % alloc
	for d.entries[idx].id != nil {
		idx++
		if idx == alloc {
			idx = 0
		}
	}
	d.entries[idx] = hashEntry{id: id, index: index}
}
