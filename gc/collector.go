package gc

import (
	"github.com/neuroradiology/qtdeclarative/heap"
	"github.com/neuroradiology/qtdeclarative/shape"
)

// Collector owns one collection cycle's moving parts: the reusable mark
// stack, the handle table roots are drawn from, the blocked-nesting guard,
// and the growth policy deciding when to run. The responsibilities are
// split into named collaborators (Mark, Sweep, Policy, Blocker,
// HandleTable) so each can be tested independently, and wired back
// together here.
type Collector struct {
	Allocator *heap.Allocator
	Handles   *HandleTable
	Blocker   *Blocker
	Policy    *Policy

	stack MarkStack

	runs         int64
	lastReclaim  int
	lastSwept    int
}

// NewCollector wires a Collector around an existing allocator.
func NewCollector(alloc *heap.Allocator, policy *Policy) *Collector {
	return &Collector{
		Allocator: alloc,
		Handles:   &HandleTable{},
		Blocker:   &Blocker{},
		Policy:    policy,
	}
}

// MaybeCollect runs a collection if Policy says to and the collector is
// not GC-blocked, then clears the growth counter. extraRoots lets a host
// pass in any additional root values (e.g. an interpreter's live stack
// slots) that this module does not itself track.
func (c *Collector) MaybeCollect(extraRoots []shape.Value) bool {
	if !c.Policy.ShouldCollect(c.Blocker) {
		return false
	}
	c.Collect(extraRoots)
	return true
}

// Collect runs one unconditional mark/sweep cycle regardless of policy,
// used by Engine.Collect (and through it the CLI's "alloc" subcommand)
// and by tests.
func (c *Collector) Collect(extraRoots []shape.Value) SweepStats {
	Mark(&c.stack, Roots{Handles: c.Handles, Extra: extraRoots})
	SweepWeakHandles(c.Handles)
	stats := Sweep(c.Allocator)

	c.runs++
	c.lastSwept = stats.Swept
	c.lastReclaim = stats.Reclaimed
	c.Policy.NoteCollected()
	return stats
}

// Stats reports cumulative and most-recent-cycle collector counters,
// combined with the allocator's own stats, for the QV4_MM_STATS dump.
type Stats struct {
	heap.Stats
	Runs            int64
	LastSwept       int
	LastReclaimed   int
}

func (c *Collector) Stats() Stats {
	return Stats{
		Stats:         c.Allocator.Stats(),
		Runs:          c.runs,
		LastSwept:     c.lastSwept,
		LastReclaimed: c.lastReclaim,
	}
}
