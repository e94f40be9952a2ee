package pagealloc

import "testing"

func TestAllocateIsPageAlignedAndSized(t *testing.T) {
	p := New(nil)
	a := p.Allocate(3)
	if a.Size() != 3*PageSize {
		t.Fatalf("Size() = %d, want %d", a.Size(), 3*PageSize)
	}
	if a.Base()%PageSize != 0 {
		t.Fatalf("Base() = %d not page-aligned", a.Base())
	}
	if p.PagesOutstanding() != 3 {
		t.Fatalf("PagesOutstanding() = %d, want 3", p.PagesOutstanding())
	}
	if p.BytesOutstanding() != 3*PageSize {
		t.Fatalf("BytesOutstanding() = %d, want %d", p.BytesOutstanding(), 3*PageSize)
	}
}

func TestReleaseDecrementsAccounting(t *testing.T) {
	p := New(nil)
	a := p.Allocate(2)
	p.Release(a)
	if p.PagesOutstanding() != 0 {
		t.Fatalf("PagesOutstanding() = %d, want 0 after Release", p.PagesOutstanding())
	}
	if p.BytesOutstanding() != 0 {
		t.Fatalf("BytesOutstanding() = %d, want 0 after Release", p.BytesOutstanding())
	}
}

func TestAllocateInvalidPageCountCallsOnFatal(t *testing.T) {
	called := false
	p := New(func(format string, args ...interface{}) { called = true })
	p.Allocate(0)
	if !called {
		t.Fatalf("onFatal was not invoked for an invalid page count")
	}
}

func TestRoundUpToPage(t *testing.T) {
	cases := map[uintptr]uintptr{
		0:            0,
		1:            PageSize,
		PageSize:     PageSize,
		PageSize + 1: 2 * PageSize,
	}
	for in, want := range cases {
		if got := RoundUpToPage(in); got != want {
			t.Fatalf("RoundUpToPage(%d) = %d, want %d", in, got, want)
		}
	}
}
