package shape

// Attributes is a PropertyAttributes bitset: writable, enumerable,
// configurable, accessor/data, and an isResolved bookkeeping bit.
// Resolve is called once before an attribute set is ever compared or
// stored, so that "unspecified" fields get their defaults instead of
// comparing as distinct from an already-resolved equal set.
type Attributes uint8

const (
	attrWritable Attributes = 1 << iota
	attrEnumerable
	attrConfigurable
	attrAccessor
	attrResolved
)

// NewDataAttributes builds attributes for a plain data property.
func NewDataAttributes(writable, enumerable, configurable bool) Attributes {
	var a Attributes
	if writable {
		a |= attrWritable
	}
	if enumerable {
		a |= attrEnumerable
	}
	if configurable {
		a |= attrConfigurable
	}
	return a
}

// NewAccessorAttributes builds attributes for an accessor (getter/setter)
// property. Accessor properties occupy two consecutive slots; the
// attributes returned here describe the first slot.
func NewAccessorAttributes(enumerable, configurable bool) Attributes {
	a := attrAccessor
	if enumerable {
		a |= attrEnumerable
	}
	if configurable {
		a |= attrConfigurable
	}
	return a
}

// emptyAttributes is used for the dummy second slot of an accessor pair.
var emptyAttributes Attributes

func (a Attributes) Writable() bool      { return a&attrWritable != 0 }
func (a Attributes) Enumerable() bool    { return a&attrEnumerable != 0 }
func (a Attributes) Configurable() bool  { return a&attrConfigurable != 0 }
func (a Attributes) IsAccessor() bool    { return a&attrAccessor != 0 }
func (a Attributes) IsData() bool        { return !a.IsAccessor() }
func (a Attributes) IsResolved() bool    { return a&attrResolved != 0 }

// IsEmpty reports whether a carries no information at all: the dummy
// second slot of an accessor pair.
func (a Attributes) IsEmpty() bool { return a&^attrResolved == 0 }

func (a Attributes) SetWritable(v bool) Attributes     { return setBit(a, attrWritable, v) }
func (a Attributes) SetEnumerable(v bool) Attributes   { return setBit(a, attrEnumerable, v) }
func (a Attributes) SetConfigurable(v bool) Attributes { return setBit(a, attrConfigurable, v) }

func setBit(a, bit Attributes, v bool) Attributes {
	if v {
		return a | bit
	}
	return a &^ bit
}

// Resolve fixes "writable" to false for an accessor's dummy/undeclared
// fields and marks the set as resolved. Called once on every attribute
// set before it is stored in a shape.
func (a Attributes) Resolve() Attributes {
	if a.IsAccessor() {
		a &^= attrWritable
	}
	return a | attrResolved
}

// Flags returns the bits relevant to canonicalization (transition-key
// hashing/equality) — everything except the bookkeeping isResolved bit,
// which must not affect whether two transitions collapse to the same edge.
func (a Attributes) Flags() int { return int(a &^ attrResolved) }
