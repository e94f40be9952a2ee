package shape

import (
	"fmt"
	"testing"

	"github.com/neuroradiology/qtdeclarative/ident"
)

func TestPropertyHashAddAndLookup(t *testing.T) {
	tab := ident.NewTable()
	h := newPropertyHash()
	var ids []*ident.Identifier
	for i := 0; i < 40; i++ {
		id := tab.Intern(fmt.Sprintf("prop%d", i))
		ids = append(ids, id)
		h = h.addEntry(id, uint32(i), i+1)
	}
	for i, id := range ids {
		idx, ok := h.lookup(id)
		if !ok {
			t.Fatalf("lookup(%q) not found", id.Text)
		}
		if idx != uint32(i) {
			t.Fatalf("lookup(%q) = %d, want %d", id.Text, idx, i)
		}
	}
}

func TestPropertyHashLookupMissing(t *testing.T) {
	tab := ident.NewTable()
	h := newPropertyHash()
	id := tab.Intern("present")
	h = h.addEntry(id, 0, 1)

	missing := tab.Intern("absent")
	if _, ok := h.lookup(missing); ok {
		t.Fatalf("lookup(%q) unexpectedly found", missing.Text)
	}
}

func TestPropertyHashSharedTableCOW(t *testing.T) {
	tab := ident.NewTable()
	h1 := newPropertyHash()
	a := tab.Intern("a")
	h1 = h1.addEntry(a, 0, 1)

	h2 := h1.retain()
	b := tab.Intern("b")
	h2 = h2.addEntry(b, 1, 2)

	if _, ok := h1.lookup(b); ok {
		t.Fatalf("mutating the retained copy leaked into the original table")
	}
	if _, ok := h2.lookup(a); !ok {
		t.Fatalf("new table lost the entry inherited from the shared original")
	}
}

func TestPropertyHashShrinkDropsStaleEntries(t *testing.T) {
	tab := ident.NewTable()
	h := newPropertyHash()
	a := tab.Intern("a")
	b := tab.Intern("b")
	h = h.addEntry(a, 0, 1)
	h = h.addEntry(b, 1, 2)

	// Simulate the class shrinking back to one member: a rebuild keyed
	// off classSize=1 must drop b's stale entry.
	h = h.addEntry(tab.Intern("c"), 0, 1)
	if _, ok := h.lookup(b); ok {
		t.Fatalf("stale entry for removed member survived a shrink rebuild")
	}
}
