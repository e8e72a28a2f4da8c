package phtree

import "github.com/pkg/errors"

// ChildStorage selects how nodes store their children.
type ChildStorage int

const (
	// DenseChildren stores children in a flat array of 2^Dims slots.
	// Fastest access, but only sensible for Dims <= 3.
	DenseChildren ChildStorage = iota
	// SparseChildren stores children in a bitmap-indexed packed array.
	// Required for Dims > 3.
	SparseChildren
)

// Config describes the shape of a tree. The zero value is a dense 2-d tree
// of 32-bit keys.
type Config struct {
	// Dims is the number of dimensions, 1 to 6.
	Dims int
	// Width is the key width in bits: 8, 16, 32 or 64. It bounds the
	// depth of the tree and the numeric range of the keys.
	Width int
	// Storage selects the child-storage strategy.
	Storage ChildStorage
}

func (cfg *Config) defaults() {
	if cfg.Dims == 0 {
		cfg.Dims = 2
	}
	if cfg.Width == 0 {
		cfg.Width = Width32
	}
}

func (cfg *Config) validate() error {
	switch cfg.Width {
	case Width8, Width16, Width32, Width64:
	default:
		return errors.Errorf("phtree: width must be 8, 16, 32 or 64, got %d", cfg.Width)
	}

	// a uint64 bitmap can address at most 2^6 children
	if cfg.Dims < 1 || cfg.Dims > 6 {
		return errors.Errorf("phtree: dims must be 1 to 6, got %d", cfg.Dims)
	}

	if cfg.Storage == DenseChildren && cfg.Dims > 3 {
		return errors.Errorf("phtree: dense child storage holds 2^dims slots per node, use SparseChildren for dims %d", cfg.Dims)
	}

	return nil
}

// tree is the engine shared by the Map and Index variants: the node
// structure, descent, splitting, merging and query traversal. The variants
// only differ in what they keep inside entries.
type tree struct {
	root    *node
	dims    int
	width   int
	storage ChildStorage
	size    int
}

func newTree(cfg Config) (tree, error) {
	cfg.defaults()

	if err := cfg.validate(); err != nil {
		return tree{}, err
	}

	t := tree{
		dims:    cfg.Dims,
		width:   cfg.Width,
		storage: cfg.Storage,
	}
	t.root = t.newNode(0, cfg.Width-1, make(Point, cfg.Dims))

	return t, nil
}

func (t *tree) newStore() childStore {
	if t.storage == DenseChildren {
		return newDenseStore(t.dims)
	}
	return newSparseStore()
}

// newNode creates a node covering the hypercube that contains p at the given
// postfix level. The node's point is set to the center of that hypercube:
// postfix bits cleared, the bit at postfixLen set.
func (t *tree) newNode(infixLen, postfixLen int, p Point) *node {
	n := &node{
		point:      make(Point, t.dims),
		children:   t.newStore(),
		infixLen:   infixLen,
		postfixLen: postfixLen,
	}

	mask := keyMask(t.width) << (postfixLen + 1)

	for d, key := range p {
		n.point[d] = key&mask | Key(1)<<postfixLen
	}

	return n
}

// newLeafNode creates a leaf holding a fresh entry for p. Because this is a
// patricia trie a brand new branch skips straight to the bottom: no other
// point shares its prefix, so there is nothing to branch on in between.
func (t *tree) newLeafNode(infixLen int, p Point) *node {
	leaf := t.newNode(infixLen, 0, p)
	t.addEntry(leaf, p)

	return leaf
}

// addEntry returns the entry for p in the leaf, creating it if the address
// is still empty.
func (t *tree) addEntry(leaf *node, p Point) *Entry {
	addr := hypercubeAddress(p, leaf)

	if child, ok := leaf.children.get(addr); ok {
		return child.entry
	}

	entry := &Entry{point: p.clone()}
	leaf.children.put(addr, ref{entry: entry})
	t.size++

	return entry
}

// insertPoint descends from the root and returns the entry for p, creating
// nodes and splitting branches along the way as needed.
func (t *tree) insertPoint(p Point) *Entry {
	cur := t.root

	for !cur.isLeaf() {
		cur = t.nodeAdd(cur, p)
	}

	return t.addEntry(cur, p)
}

// nodeAdd advances the insertion descent by one node.
func (t *tree) nodeAdd(n *node, p Point) *node {
	addr := hypercubeAddress(p, n)

	child, ok := n.children.get(addr)
	if !ok {
		leaf := t.newLeafNode(n.postfixLen-1, p)
		n.children.put(addr, ref{node: leaf})

		return leaf
	}

	return t.handleCollision(n, addr, child.node, p)
}

// handleCollision decides what to do when the descent runs into an existing
// child: split the infix if the new point diverges inside the child's
// skipped range, otherwise continue into the child.
func (t *tree) handleCollision(parent *node, addr uint, sub *node, p Point) *node {
	// with no skipped levels there is no room to insert a node between
	// parent and sub
	if sub.infixLen > 0 {
		// divergingBits == sub.postfixLen+1 would mean p belongs to
		// sub exactly; anything higher diverges inside the infix
		if db := divergingBits(p, sub.point); db > sub.postfixLen+1 {
			return t.insertSplit(parent, addr, sub, p, db)
		}
	}

	return sub
}

// insertSplit replaces sub with a new intermediate node at the divergence
// level, re-attaching sub as one child and a fresh leaf for p as the other.
func (t *tree) insertSplit(parent *node, addr uint, sub *node, p Point, divergence int) *node {
	mid := t.newNode(parent.postfixLen-divergence, divergence-1, p)
	parent.children.put(addr, ref{node: mid})

	mid.children.put(hypercubeAddress(sub.point, mid), ref{node: sub})
	sub.infixLen = mid.postfixLen - sub.postfixLen - 1

	leaf := t.newLeafNode(mid.postfixLen-1, p)
	mid.children.put(hypercubeAddress(p, mid), ref{node: leaf})

	return leaf
}

// findEntry returns the entry at exactly p, or nil. The descent checks the
// skipped prefix at every node, so points that merely share a partial path
// are rejected without reaching the bottom.
func (t *tree) findEntry(p Point) *Entry {
	cur := t.root

	for !cur.isLeaf() {
		child, ok := cur.children.get(hypercubeAddress(p, cur))
		if !ok || !prefixEqual(p, cur.point, cur.postfixLen) {
			return nil
		}

		cur = child.node
	}

	child, ok := cur.children.get(hypercubeAddress(p, cur))
	if !ok || !child.entry.point.Equal(p) {
		return nil
	}

	return child.entry
}

// removePoint deletes the entry at p, if present. drop, when not nil, is
// called with the entry before it is unlinked. An empty leaf is removed from
// its parent, and any ancestor left with a single child is spliced out of
// the branch: its lone child is attached to the grandparent with the infix
// corrected to absorb the removed level.
func (t *tree) removePoint(p Point, drop func(*Entry)) bool {
	var (
		stack = make([]*node, 0, t.width)
		cur   = t.root
	)

	for !cur.isLeaf() {
		child, ok := cur.children.get(hypercubeAddress(p, cur))
		if !ok {
			return false
		}

		stack = append(stack, cur)
		cur = child.node
	}

	addr := hypercubeAddress(p, cur)

	child, ok := cur.children.get(addr)
	if !ok || !child.entry.point.Equal(p) {
		return false
	}

	if drop != nil {
		drop(child.entry)
	}

	cur.children.remove(addr)
	t.size--

	if cur.children.count() > 0 {
		return true
	}

	// the leaf is empty - unlink it from its parent
	parent := stack[len(stack)-1]
	parent.children.remove(hypercubeAddress(cur.point, parent))

	// walk back up merging single-child nodes; stack[0] is the root,
	// which is allowed to keep a single child
	for top := len(stack) - 1; top > 0; top-- {
		n := stack[top]

		if n.children.count() > 1 {
			break
		}

		// a count of zero cannot happen here: it would mean a split
		// node that never split anything, and removal never leaves
		// one behind

		var (
			lone   = n.children.first()
			grand  = stack[top-1]
			atAddr = hypercubeAddress(n.point, grand)
		)

		lone.node.infixLen = grand.postfixLen - lone.node.postfixLen - 1
		grand.children.put(atAddr, lone)
	}

	return true
}

// walkEntries calls fn for every entry under n until fn returns false.
func (t *tree) walkEntries(n *node, fn func(*Entry) bool) bool {
	if n.isLeaf() {
		return n.children.each(func(child ref) bool {
			return fn(child.entry)
		})
	}

	return n.children.each(func(child ref) bool {
		return t.walkEntries(child.node, fn)
	})
}

// forEach calls fn for every entry in the tree until fn returns false.
// Reports whether the iteration ran to completion.
func (t *tree) forEach(fn func(*Entry) bool) bool {
	return t.walkEntries(t.root, fn)
}

// queryWindow visits every entry whose point lies in [min,max], both
// inclusive, in all dimensions. min and max must already be normalized.
func (t *tree) queryWindow(min, max Point, visit func(*Entry)) {
	t.root.children.each(func(child ref) bool {
		t.queryNode(child.node, min, max, visit)
		return true
	})
}

// queryNode is the recursive pruned descent of a window query.
func (t *tree) queryNode(n *node, min, max Point, visit func(*Entry)) {
	// compare the node's prefix against the window at the node's own
	// granularity; a miss prunes the whole subtree
	if !prefixGreaterEqual(n.point, min, n.postfixLen) ||
		!prefixLessEqual(n.point, max, n.postfixLen) {
		return
	}

	// The masks skip child addresses that cannot overlap the window
	// without touching the children themselves. The node's point is its
	// hypercube center, so comparing the window bounds against it
	// decides, per dimension, which halves of the node the window
	// reaches: maskLower has a 1 where the window lies entirely in the
	// upper half, maskUpper has a 1 wherever it reaches the upper half.
	// An address can hold overlapping content only if
	// (addr|maskLower)&maskUpper == addr.
	var maskLower, maskUpper uint

	for d := 0; d < t.dims; d++ {
		maskLower <<= 1
		if min[d] >= n.point[d] {
			maskLower |= 1
		}

		maskUpper <<= 1
		if max[d] >= n.point[d] {
			maskUpper |= 1
		}
	}

	limit := uint(1) << t.dims

	if n.isLeaf() {
		for addr := uint(0); addr < limit; addr++ {
			if (addr|maskLower)&maskUpper != addr {
				continue
			}

			child, ok := n.children.get(addr)
			if !ok {
				continue
			}

			// the prefix checks above are only as fine as the
			// leaf's level - the entry still needs the exact test
			if child.entry.point.GreaterEqual(min) && child.entry.point.LessEqual(max) {
				visit(child.entry)
			}
		}

		return
	}

	for addr := uint(0); addr < limit; addr++ {
		if (addr|maskLower)&maskUpper != addr {
			continue
		}

		if child, ok := n.children.get(addr); ok {
			t.queryNode(child.node, min, max, visit)
		}
	}
}

// clear drops every node and entry. drop, when not nil, is called with each
// entry first.
func (t *tree) clear(drop func(*Entry)) {
	if drop != nil {
		t.forEach(func(entry *Entry) bool {
			drop(entry)
			return true
		})
	}

	t.root = t.newNode(0, t.width-1, make(Point, t.dims))
	t.size = 0
}

// empty reports whether the tree holds no entries.
func (t *tree) empty() bool {
	return t.root.children.count() == 0
}

// Len returns the number of distinct points in the tree.
func (t *tree) Len() int {
	return t.size
}

// Width returns the configured key width in bits.
func (t *tree) Width() int {
	return t.width
}

// Dims returns the configured number of dimensions.
func (t *tree) Dims() int {
	return t.dims
}

// PointOf assembles a point from native signed integer values using the
// tree's configured width. The number of values must equal Dims.
func (t *tree) PointOf(values ...int64) Point {
	p := make(Point, len(values))

	for d, value := range values {
		p[d] = IntToKey(value, t.width)
	}

	return p
}

// normalizeWindow copies min and max, swapping per dimension so that
// min <= max everywhere.
func normalizeWindow(min, max Point) (Point, Point) {
	lo, hi := min.clone(), max.clone()

	for d := range lo {
		if hi[d] < lo[d] {
			lo[d], hi[d] = hi[d], lo[d]
		}
	}

	return lo, hi
}
