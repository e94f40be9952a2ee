package ident

// primeDeltas gives prime-ish table sizes: table sizes are
// 2^n + primeDeltas[n], without a primality test on every resize.
var primeDeltas = [32]uint8{
	0, 0, 1, 3, 1, 5, 3, 3, 1, 9, 7, 5, 3, 9, 25, 3,
	1, 21, 3, 21, 7, 15, 9, 5, 3, 29, 15, 0, 0, 0, 0, 0,
}

func primeForNumBits(numBits int) int {
	return (1 << uint(numBits)) + int(primeDeltas[numBits])
}

// Table interns property names (and small integers / array indices) into
// stable *Identifier pointers. It is an open-addressed, linear-probed hash
// set keyed by string content but returning pointer-stable results, so
// that repeated interning of the same text always yields the same
// *Identifier.
//
// The resize policy (grow when more than half full, table sizes drawn
// from primeForNumBits) follows the same shape as shape.propertyHash;
// Table and propertyHash are deliberately parallel implementations of one
// algorithm applied to two different key spaces (interning text vs.
// indexing a shape's property slots).
type Table struct {
	numBits int
	slots   []*Identifier // len == primeForNumBits(numBits)
	count   int

	// byValue caches UInt/ArrayIndex identifiers by numeric value so that
	// identifier(42) is also pointer-stable without re-hashing the decimal
	// text representation each time.
	byValue map[uint32]*Identifier
}

// NewTable returns an empty identifier table.
func NewTable() *Table {
	t := &Table{numBits: 4, byValue: make(map[uint32]*Identifier)}
	t.slots = make([]*Identifier, primeForNumBits(t.numBits))
	return t
}

// Intern returns the canonical Identifier for s, creating it on first use.
func (t *Table) Intern(s string) *Identifier {
	h := fnv1a32(s)
	if id := t.find(s, h); id != nil {
		return id
	}
	return t.insert(&Identifier{Text: s, HashValue: h, Kind: KindString})
}

// InternUInt returns the canonical Identifier for the unsigned integer n,
// used for array-length-like numeric property names.
func (t *Table) InternUInt(n uint32) *Identifier {
	if id, ok := t.byValue[n]; ok && id.Kind == KindUInt {
		return id
	}
	id := t.Intern(uintToString(n))
	id.Kind = KindUInt
	t.byValue[n] = id
	return id
}

// InternArrayIndex returns the canonical Identifier for the array index n.
func (t *Table) InternArrayIndex(n uint32) *Identifier {
	if id, ok := t.byValue[n]; ok && id.Kind == KindArrayIndex {
		return id
	}
	id := t.Intern(uintToString(n))
	id.Kind = KindArrayIndex
	t.byValue[n] = id
	return id
}

func uintToString(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (t *Table) find(s string, h uint32) *Identifier {
	alloc := len(t.slots)
	idx := int(h) % alloc
	for {
		e := t.slots[idx]
		if e == nil {
			return nil
		}
		if e.HashValue == h && e.Text == s {
			return e
		}
		idx++
		if idx == alloc {
			idx = 0
		}
	}
}

func (t *Table) insert(id *Identifier) *Identifier {
	// fill up to max 50%, same load-factor rule as shape.propertyHash.
	if alloc := len(t.slots); alloc <= t.count*2 {
		t.grow()
	}
	t.insertSlot(id)
	t.count++
	return id
}

func (t *Table) insertSlot(id *Identifier) {
	alloc := len(t.slots)
	idx := int(id.HashValue) % alloc
	for t.slots[idx] != nil {
		idx++
		if idx == alloc {
			idx = 0
		}
	}
	t.slots[idx] = id
}

func (t *Table) grow() {
	old := t.slots
	t.numBits++
	t.slots = make([]*Identifier, primeForNumBits(t.numBits))
	for _, id := range old {
		if id != nil {
			t.insertSlot(id)
		}
	}
}

// Len reports how many identifiers are currently interned.
func (t *Table) Len() int { return t.count }
