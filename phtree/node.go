package phtree

// Entry is the leaf-level datum stored at a point. The Map variant appends
// caller ids to IDs; the Index variant stores a single caller-managed element
// in Elem. Entries are owned by the tree and invalidated by Clear.
type Entry struct {
	point Point

	// IDs holds the element ids associated with the entry's point
	// (Map variant). Order is not meaningful.
	IDs []int

	// Elem is the caller-managed element at the entry's point
	// (Index variant).
	Elem interface{}
}

// Point returns the entry's point. The caller must not modify it.
func (e *Entry) Point() Point {
	return e.point
}

// node is a hypercube region of the key space.
type node struct {
	// point is the center of the node's hypercube, not an inserted point:
	// all bits below postfixLen are cleared and the bit at postfixLen is
	// set. The prefix above postfixLen routes lookups; the set bit makes
	// the center usable for the >= comparisons in window queries.
	point Point

	children childStore

	// infixLen is the number of bit-levels skipped between this node and
	// its parent (patricia compression). Zero means no skipped levels.
	infixLen int

	// postfixLen is the number of trie levels strictly below this node.
	// Zero marks a leaf: its children are entries, not nodes.
	postfixLen int
}

func (n *node) isLeaf() bool {
	return n.postfixLen == 0
}

// hypercubeAddress packs one bit per dimension of the point, sampled at the
// node's postfix level, into a child address - most significant dimension
// first. This single bit per dimension is the branching decision at this
// trie level.
func hypercubeAddress(p Point, n *node) uint {
	var addr uint

	for _, key := range p {
		addr = addr<<1 | uint(key>>n.postfixLen&1)
	}

	return addr
}
