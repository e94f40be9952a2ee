package ident

import "testing"

func TestInternReturnsSamePointer(t *testing.T) {
	tab := NewTable()
	a := tab.Intern("foo")
	b := tab.Intern("foo")
	if a != b {
		t.Fatalf("Intern(\"foo\") returned different pointers: %p vs %p", a, b)
	}
	if a.Text != "foo" {
		t.Fatalf("Text = %q, want foo", a.Text)
	}
}

func TestInternDistinctText(t *testing.T) {
	tab := NewTable()
	a := tab.Intern("foo")
	b := tab.Intern("bar")
	if a == b {
		t.Fatalf("Intern(\"foo\") and Intern(\"bar\") returned the same pointer")
	}
}

func TestInternUIntIsStableAndNumeric(t *testing.T) {
	tab := NewTable()
	a := tab.InternUInt(42)
	b := tab.InternUInt(42)
	if a != b {
		t.Fatalf("InternUInt(42) returned different pointers")
	}
	if a.Text != "42" {
		t.Fatalf("Text = %q, want 42", a.Text)
	}
	if a.Kind != KindUInt {
		t.Fatalf("Kind = %v, want KindUInt", a.Kind)
	}
}

func TestInternArrayIndexDistinctKindSameText(t *testing.T) {
	tab := NewTable()
	idx := tab.InternArrayIndex(7)
	if idx.Kind != KindArrayIndex {
		t.Fatalf("Kind = %v, want KindArrayIndex", idx.Kind)
	}
	if idx.Text != "7" {
		t.Fatalf("Text = %q, want 7", idx.Text)
	}
}

func TestTableGrowsAndStaysConsistent(t *testing.T) {
	tab := NewTable()
	var ids []*Identifier
	const n = 500
	for i := 0; i < n; i++ {
		ids = append(ids, tab.Intern(uintToString(uint32(i))))
	}
	if tab.Len() != n {
		t.Fatalf("Len() = %d, want %d", tab.Len(), n)
	}
	for i, id := range ids {
		again := tab.Intern(uintToString(uint32(i)))
		if again != id {
			t.Fatalf("interning %q again after growth returned a different pointer", id.Text)
		}
	}
}

func TestUintToString(t *testing.T) {
	cases := map[uint32]string{0: "0", 7: "7", 42: "42", 123456: "123456"}
	for n, want := range cases {
		if got := uintToString(n); got != want {
			t.Fatalf("uintToString(%d) = %q, want %q", n, got, want)
		}
	}
}
