package gc

// Blocker is a GC-blocked nesting counter: native/host code that must not
// have objects moved or reclaimed out from under it brackets itself with
// Enter/Leave, and a collection already in flight or about to start
// defers until the nesting count returns to zero. Nesting is a plain
// counter: every Enter must be balanced by exactly one Leave, and Leave
// below zero is a caller bug.
type Blocker struct {
	depth int
}

// Enter increments the nesting depth. Calls may nest.
func (b *Blocker) Enter() { b.depth++ }

// Leave decrements the nesting depth. Calling Leave more times than Enter
// is a programming error; there is no persisted state to corrupt, so it
// panics rather than returning an error.
func (b *Blocker) Leave() {
	if b.depth == 0 {
		panic("gc: Leave without matching Enter")
	}
	b.depth--
}

// Blocked reports whether a collection must be deferred right now.
func (b *Blocker) Blocked() bool { return b.depth > 0 }

// Policy decides when a collection should run. QV4_MM_AGGRESSIVE_GC
// forces a collection before every allocation rather than only once a
// growth threshold is crossed.
type Policy struct {
	// Aggressive, when true, requests a collection ahead of every single
	// allocation instead of waiting for GrowthThreshold.
	Aggressive bool

	// GrowthThreshold is how many bytes of net allocation since the last
	// collection are allowed before one is requested.
	GrowthThreshold int64

	bytesSinceLastGC int64
}

// NewPolicy returns a Policy with the given growth threshold and
// aggressive flag.
func NewPolicy(growthThreshold int64, aggressive bool) *Policy {
	return &Policy{GrowthThreshold: growthThreshold, Aggressive: aggressive}
}

// RecordAllocation tracks size bytes allocated since the last collection.
func (p *Policy) RecordAllocation(size int64) {
	p.bytesSinceLastGC += size
}

// ShouldCollect reports whether a collection should run now, given the
// current GC-blocked state.
func (p *Policy) ShouldCollect(blocker *Blocker) bool {
	if blocker != nil && blocker.Blocked() {
		return false
	}
	if p.Aggressive {
		return true
	}
	return p.bytesSinceLastGC >= p.GrowthThreshold
}

// NoteCollected resets the growth counter after a collection has run.
func (p *Policy) NoteCollected() {
	p.bytesSinceLastGC = 0
}
