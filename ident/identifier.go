// Package ident interns property names into stable, pointer-identical
// Identifiers with a precomputed hash. An Identifier is interned, its Text
// and HashValue never change, and its pointer stands in for semantic
// equality everywhere else in the engine.
package ident

import "fmt"

// Kind distinguishes the three property-name shapes.
type Kind uint8

const (
	// KindString is an ordinary property name.
	KindString Kind = iota
	// KindUInt is an unsigned integer used as a property name (e.g. array
	// length accounting).
	KindUInt
	// KindArrayIndex is a canonical array index name ("0", "1", ...).
	KindArrayIndex
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUInt:
		return "uint"
	case KindArrayIndex:
		return "arrayindex"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Identifier is an interned property name. Two Identifiers are
// semantically equal iff they are the same pointer. Text and HashValue are
// fixed at interning. Kind starts as KindString; InternUInt and
// InternArrayIndex share the one Identifier for a given text and overwrite
// its Kind, so it reflects the most recent of those calls for that text.
type Identifier struct {
	Text      string
	HashValue uint32
	Kind      Kind
}

func (id *Identifier) String() string {
	if id == nil {
		return "<nil-identifier>"
	}
	return id.Text
}

// fnv1a32 computes the hash used to intern and to probe the open-addressed
// tables in this package and in shape.propertyHash. It does not need to be
// cryptographically strong, only stable and well distributed.
func fnv1a32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
