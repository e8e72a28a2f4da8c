package phtree

import "github.com/hideo55/go-popcount"

// ref holds either a node or an Entry. Internal nodes only ever store node
// refs; leaves only ever store entry refs.
type ref struct {
	node  *node
	entry *Entry
}

func (r ref) empty() bool {
	return r.node == nil && r.entry == nil
}

// childStore maps a Dims-bit hypercube address to a child slot.
//
// Two strategies exist: a dense array indexed directly by address, and a
// sparse packed array indexed through an active-children bitmap. Both keep
// children in ascending address order when iterated with each.
type childStore interface {
	// get returns the child at addr, if there is one.
	get(addr uint) (ref, bool)
	// put places a child at addr, replacing any existing one.
	put(addr uint, child ref)
	// remove deletes the child at addr. Removing an empty slot is a no-op.
	remove(addr uint)
	// count returns the number of active children.
	count() int
	// first returns the active child with the lowest address.
	first() ref
	// each calls fn for every active child in address order until fn
	// returns false. Reports whether the iteration ran to completion.
	each(fn func(child ref) bool) bool
}

// denseStore is a flat array of 2^dims slots addressed directly. Constant
// time everything, but the unused slots make it practical only for low
// dimension counts.
type denseStore struct {
	refs []ref
	num  int
}

func newDenseStore(dims int) *denseStore {
	return &denseStore{refs: make([]ref, 1<<dims)}
}

func (s *denseStore) get(addr uint) (ref, bool) {
	child := s.refs[addr]
	return child, !child.empty()
}

func (s *denseStore) put(addr uint, child ref) {
	if s.refs[addr].empty() {
		s.num++
	}
	s.refs[addr] = child
}

func (s *denseStore) remove(addr uint) {
	if !s.refs[addr].empty() {
		s.num--
	}
	s.refs[addr] = ref{}
}

func (s *denseStore) count() int {
	return s.num
}

func (s *denseStore) first() ref {
	for _, child := range s.refs {
		if !child.empty() {
			return child
		}
	}
	return ref{}
}

func (s *denseStore) each(fn func(ref) bool) bool {
	for _, child := range s.refs {
		if !child.empty() && !fn(child) {
			return false
		}
	}
	return true
}

// sparseStore keeps only the active children, packed in address order. The
// bitmap records which addresses are active; a child's slice index is the
// popcount of the bitmap below its address. Inserting or removing shifts the
// tail of the slice, trading some mutation cost for memory that scales with
// the child count instead of 2^dims.
type sparseStore struct {
	bitmap uint64
	refs   []ref
}

func newSparseStore() *sparseStore {
	return &sparseStore{}
}

// index returns the packed slice index for an active address.
func (s *sparseStore) index(addr uint) int {
	return int(popcount.Count(s.bitmap & (uint64(1)<<addr - 1)))
}

func (s *sparseStore) get(addr uint) (ref, bool) {
	if s.bitmap&(uint64(1)<<addr) == 0 {
		return ref{}, false
	}
	return s.refs[s.index(addr)], true
}

func (s *sparseStore) put(addr uint, child ref) {
	var (
		mask = uint64(1) << addr
		idx  = s.index(addr)
	)

	if s.bitmap&mask != 0 {
		s.refs[idx] = child
		return
	}

	s.refs = append(s.refs, ref{})
	copy(s.refs[idx+1:], s.refs[idx:])
	s.refs[idx] = child
	s.bitmap |= mask
}

func (s *sparseStore) remove(addr uint) {
	mask := uint64(1) << addr

	if s.bitmap&mask == 0 {
		return
	}

	var (
		idx  = s.index(addr)
		last = len(s.refs) - 1
	)

	copy(s.refs[idx:], s.refs[idx+1:])
	s.refs[last] = ref{}
	s.refs = s.refs[:last]
	s.bitmap &^= mask
}

func (s *sparseStore) count() int {
	return len(s.refs)
}

func (s *sparseStore) first() ref {
	if len(s.refs) == 0 {
		return ref{}
	}
	return s.refs[0]
}

func (s *sparseStore) each(fn func(ref) bool) bool {
	for _, child := range s.refs {
		if !fn(child) {
			return false
		}
	}
	return true
}
