package shape

import "github.com/neuroradiology/qtdeclarative/ident"

// Class is one node of the shared, canonicalized transition DAG ("shape")
// that gives every managed object its property layout without storing a
// private property table per instance.
//
// nameMap and propertyData are refcounted/COW (shape.sharedData): a child
// Class created by addMember starts by sharing both arrays with its
// parent and only clones when a write would otherwise be visible through
// an unrelated sibling.
type Class struct {
	pool *Pool
	vt   *VTable

	nameMap      *sharedData[*ident.Identifier]
	propertyData *sharedData[Attributes]
	propertyTable propertyHash

	size int // number of occupied slots; == nameMap.len() after resolve

	transitions map[transitionKey]*Class

	// numRedundantTransitions counts edges kept in transitions purely so a
	// later identical mutation finds the existing target instead of
	// allocating a fresh Class, even though that edge is not reachable by
	// walking "the" canonical path from Empty; see DESIGN.md for why
	// RemoveMember's backward edge is kept rather than pruned.
	numRedundantTransitions int

	destroyed bool
}

// Pool is the per-engine home for the Empty class and the identifier
// table every Class's transitions are keyed against, kept separate from
// any engine type so this package never has to import one — doing so
// would reintroduce the cycle shape.Markable/VTable already exists to
// avoid (heap -> shape, never shape -> engine -> heap).
type Pool struct {
	Identifiers *ident.Table
	Empty       *Class
}

// NewPool creates a Pool with a fresh identifier table and the one root
// Empty class every object's shape chain ultimately descends from.
func NewPool() *Pool {
	p := &Pool{Identifiers: ident.NewTable()}
	p.Empty = &Class{
		pool:         p,
		nameMap:      newSharedData[*ident.Identifier](),
		propertyData: newSharedData[Attributes](),
		propertyTable: newPropertyHash(),
		transitions:  make(map[transitionKey]*Class),
	}
	return p
}

// VTable returns the class's current vtable (nil until ChangeVTable has
// been called at least once along this chain — whatever code first
// associates a Class with a concrete managed type is responsible for it).
func (c *Class) VTable() *VTable { return c.vt }

// Size returns the number of occupied property slots.
func (c *Class) Size() int { return c.size }

// Find looks up id, returning its slot index and attributes. ok is false
// for the dummy second slot of an accessor pair, which is never reachable
// by identifier (its nameMap entry is nil) and never stored this way.
func (c *Class) Find(id *ident.Identifier) (index uint32, attrs Attributes, ok bool) {
	index, ok = c.propertyTable.lookup(id)
	if !ok {
		return 0, 0, false
	}
	attrs = c.propertyData.at(int(index))
	if attrs.IsEmpty() {
		return 0, 0, false
	}
	return index, attrs, true
}

// Sealed reports whether every occupied slot is non-configurable: new
// properties may not be added, existing ones may not be removed or
// reconfigured, but writable data properties may still change value.
func (c *Class) Sealed() bool {
	for i := 0; i < c.size; i++ {
		a := c.propertyData.at(i)
		if a.IsEmpty() {
			continue
		}
		if a.Configurable() {
			return false
		}
	}
	return true
}

// Frozen reports whether the class is sealed and, in addition, every data
// property is non-writable (accessor properties need no further check:
// sealed already forbids redefining them).
func (c *Class) Frozen() bool {
	for i := 0; i < c.size; i++ {
		a := c.propertyData.at(i)
		if a.IsEmpty() {
			continue
		}
		if a.Configurable() {
			return false
		}
		if a.IsData() && a.Writable() {
			return false
		}
	}
	return true
}

// AddMember transitions to (or reuses an existing transition to) a Class
// with one additional property id/attrs appended at the next free slot.
// The attribute set is resolved exactly once here, before it is ever used
// as a map key or stored, so two logically-identical-but-differently-
// defaulted calls collapse onto the same edge.
//
// If id already names a live member of c, this delegates to ChangeMember
// instead of forging a second add-edge for the same identifier. If attrs
// is an accessor, a second slot is appended right after the first, with
// empty attributes and a nil identifier: that dummy slot rides along with
// the owner's single transition rather than getting one of its own.
func (c *Class) AddMember(id *ident.Identifier, attrs Attributes) (*Class, uint32) {
	attrs = attrs.Resolve()

	if index, _, ok := c.Find(id); ok {
		return c.ChangeMember(id, attrs), index
	}

	key := addMemberKey(id, attrs)
	if next, ok := c.transitions[key]; ok {
		width := uint32(1)
		if attrs.IsAccessor() {
			width = 2
		}
		return next, uint32(next.size) - width
	}

	index := uint32(c.size)
	nameMap := c.nameMap.retain().add(int(index), id)
	propertyData := c.propertyData.retain().add(int(index), attrs)
	nextSize := c.size + 1
	if attrs.IsAccessor() {
		nameMap = nameMap.add(int(index)+1, nil)
		propertyData = propertyData.add(int(index)+1, emptyAttributes)
		nextSize++
	}

	next := &Class{
		pool:          c.pool,
		vt:            c.vt,
		nameMap:       nameMap,
		propertyData:  propertyData,
		propertyTable: c.propertyTable.retain().addEntry(id, index, nextSize),
		size:          nextSize,
		transitions:   make(map[transitionKey]*Class),
	}
	c.transitions[key] = next
	return next, index
}

// ChangeMember transitions to a Class identical to c except that id's
// attributes are replaced by attrs. The slot index is unchanged.
//
// This rebuilds an entirely fresh Class by replaying every member of c
// with the one attribute substituted — an O(n^2) walk over the chain for
// an n-member object. DESIGN.md records the decision to keep that cost
// rather than memoizing it, since memoizing would change which Class
// instances compare pointer-equal, and canonicalization semantics are
// what callers rely on.
func (c *Class) ChangeMember(id *ident.Identifier, attrs Attributes) *Class {
	attrs = attrs.Resolve()
	index, _, ok := c.Find(id)
	if !ok {
		return c
	}
	if existing := c.propertyData.at(int(index)); existing == attrs {
		return c
	}

	key := changeMemberKey(id, attrs)
	if next, ok := c.transitions[key]; ok {
		return next
	}

	next := c.pool.Empty
	for i := 0; i < c.size; i++ {
		memberID := c.nameMap.at(i)
		if memberID == nil {
			// Accessor dummy slot: AddMember recreates it automatically
			// alongside its owner, below.
			continue
		}
		memberAttrs := c.propertyData.at(i)
		if uint32(i) == index {
			memberAttrs = attrs
		}
		next, _ = next.AddMember(memberID, memberAttrs)
	}
	next = next.ChangeVTable(c.vt)

	c.transitions[key] = next
	next.numRedundantTransitions++
	return next
}

// RemoveMember transitions to a Class with id's member omitted entirely:
// every later member is replayed via AddMember in order, so slot indices
// compact down and close the gap rather than leaving a hole. An accessor
// member's paired dummy slot is skipped along with it (AddMember
// recreates the pair for whichever accessor members survive the replay).
//
// Also records a redundant backward transition edge from the result back
// to c, keyed the same as the forward edge, unless the result is
// pool.Empty; harmless, tracked via
// numRedundantTransitions, and kept for parity with how AddMember and
// ChangeMember each leave their own edge behind.
func (c *Class) RemoveMember(id *ident.Identifier) *Class {
	index, _, ok := c.Find(id)
	if !ok {
		return c
	}

	key := removeMemberKey(id)
	if next, ok := c.transitions[key]; ok {
		return next
	}

	next := c.pool.Empty
	for i := 0; i < c.size; i++ {
		memberID := c.nameMap.at(i)
		if memberID == nil || uint32(i) == index {
			continue
		}
		memberAttrs := c.propertyData.at(i)
		next, _ = next.AddMember(memberID, memberAttrs)
	}
	next = next.ChangeVTable(c.vt)

	c.transitions[key] = next
	if next != c.pool.Empty {
		next.transitions[key] = c
		next.numRedundantTransitions++
	}
	return next
}

// ChangeVTable transitions to a Class identical to c but carrying vt,
// used when an object's concrete type changes without its properties
// changing (e.g. becoming sealed at the engine level while keeping its
// layout).
func (c *Class) ChangeVTable(vt *VTable) *Class {
	if c.vt == vt {
		return c
	}
	key := changeVTableKey(vt)
	if next, ok := c.transitions[key]; ok {
		return next
	}
	next := &Class{
		pool:          c.pool,
		vt:            vt,
		nameMap:       c.nameMap.retain(),
		propertyData:  c.propertyData.retain(),
		propertyTable: c.propertyTable.retain(),
		size:          c.size,
		transitions:   make(map[transitionKey]*Class),
	}
	c.transitions[key] = next
	return next
}

// Destroy releases this class's share of its refcounted arrays. Nothing
// in this module calls it: sweep clears a reclaimed object's Class
// pointer but never destroys the Class itself.
func (c *Class) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.nameMap.release()
	c.propertyData.release()
	c.propertyTable.release()
}
