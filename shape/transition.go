package shape

import "github.com/neuroradiology/qtdeclarative/ident"

// transitionKind distinguishes the four edge kinds the transition DAG
// enumerates: adding a member, changing an existing member's attributes,
// removing a member, and changing only the vtable (proto-chain /
// class-of-object swap with no property change). Two transitions with the
// same kind but different identifier/attributes/vtable are distinct
// edges, never collapsed.
type transitionKind uint8

const (
	transitionAddMember transitionKind = iota
	transitionChangeMember
	transitionRemoveMember
	transitionChangeVTable
)

// transitionKey canonicalizes a single outgoing edge of the transition
// DAG: the identifier (nil for changeVTable edges), the resolved
// attribute flags (ignored for removeMember/changeVTable), and the target
// vtable pointer (ignored unless this is a changeVTable edge).
//
// Used as a map key: *ident.Identifier is already interned (pointer
// equality == value equality), and *VTable values handed to the Class are
// expected to be process-wide singletons for the same reason, so plain Go
// map equality is exactly the structural comparison two edges need.
type transitionKey struct {
	id    *ident.Identifier
	attrs int
	vt    *VTable
	kind  transitionKind
}

func addMemberKey(id *ident.Identifier, attrs Attributes) transitionKey {
	return transitionKey{id: id, attrs: attrs.Flags(), kind: transitionAddMember}
}

func changeMemberKey(id *ident.Identifier, attrs Attributes) transitionKey {
	return transitionKey{id: id, attrs: attrs.Flags(), kind: transitionChangeMember}
}

func removeMemberKey(id *ident.Identifier) transitionKey {
	return transitionKey{id: id, kind: transitionRemoveMember}
}

func changeVTableKey(vt *VTable) transitionKey {
	return transitionKey{vt: vt, kind: transitionChangeVTable}
}
