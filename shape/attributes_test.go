package shape

import "testing"

func TestNewDataAttributes(t *testing.T) {
	a := NewDataAttributes(true, false, true)
	if !a.Writable() || a.Enumerable() || !a.Configurable() {
		t.Fatalf("unexpected flags: writable=%v enumerable=%v configurable=%v", a.Writable(), a.Enumerable(), a.Configurable())
	}
	if a.IsAccessor() {
		t.Fatalf("data attributes reported as accessor")
	}
}

func TestNewAccessorAttributes(t *testing.T) {
	a := NewAccessorAttributes(true, true)
	if !a.IsAccessor() {
		t.Fatalf("accessor attributes not reported as accessor")
	}
	if !a.Enumerable() || !a.Configurable() {
		t.Fatalf("unexpected enumerable/configurable flags")
	}
}

func TestResolveClearsWritableForAccessors(t *testing.T) {
	a := NewAccessorAttributes(true, true)
	a = a.SetWritable(true) // nonsensical for an accessor, Resolve must clear it
	r := a.Resolve()
	if r.Writable() {
		t.Fatalf("Resolve() left writable set on an accessor")
	}
	if !r.IsResolved() {
		t.Fatalf("Resolve() did not set the resolved bit")
	}
}

func TestFlagsExcludesResolvedBit(t *testing.T) {
	a := NewDataAttributes(true, true, true)
	r := a.Resolve()
	if r.Flags() != a.Flags() {
		t.Fatalf("Flags() changed after Resolve(): %d vs %d", r.Flags(), a.Flags())
	}
}

func TestEmptyAttributesIsEmpty(t *testing.T) {
	if !emptyAttributes.IsEmpty() {
		t.Fatalf("emptyAttributes.IsEmpty() = false")
	}
	nonEmpty := NewDataAttributes(true, true, true)
	if nonEmpty.IsEmpty() {
		t.Fatalf("non-empty attributes reported as empty")
	}
}
