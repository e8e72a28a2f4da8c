package phtree

// Map is the multimap variant: every point maps to a growable list of caller
// element ids. Several ids can share one point, and the same id can live at
// several points.
//
// A Map must not be used from multiple goroutines without external locking.
type Map struct {
	tree
}

// NewMap creates a multimap tree with the given configuration.
func NewMap(cfg Config) (*Map, error) {
	t, err := newTree(cfg)
	if err != nil {
		return nil, err
	}

	return &Map{tree: t}, nil
}

// Insert associates id with the point and returns the point's entry. The
// entry is created on the first insertion at the point; later insertions
// append to its id list, duplicates included.
func (m *Map) Insert(p Point, id int) *Entry {
	entry := m.insertPoint(p)
	entry.IDs = append(entry.IDs, id)

	return entry
}

// Find returns the entry at exactly p, or nil if the point was never
// inserted.
func (m *Map) Find(p Point) *Entry {
	return m.findEntry(p)
}

// Contains reports whether an entry exists at p.
func (m *Map) Contains(p Point) bool {
	return m.findEntry(p) != nil
}

// Remove deletes the entry at p together with all of its ids. Removing an
// absent point is a no-op.
func (m *Map) Remove(p Point) {
	m.removePoint(p, nil)
}

// RemoveElement deletes the first occurrence of id from the entry at p,
// swapping the last id into its place - id order is not preserved. The entry
// stays in the tree even if its id list becomes empty; use Remove to delete
// the point itself.
func (m *Map) RemoveElement(p Point, id int) {
	entry := m.findEntry(p)
	if entry == nil {
		return
	}

	for i, have := range entry.IDs {
		if have != id {
			continue
		}

		last := len(entry.IDs) - 1
		entry.IDs[i] = entry.IDs[last]
		entry.IDs = entry.IDs[:last]

		return
	}
}

// Empty reports whether the map holds no entries.
func (m *Map) Empty() bool {
	return m.empty()
}

// Clear removes every entry from the map.
func (m *Map) Clear() {
	m.clear(nil)
}

// ForEach calls fn for every entry until fn returns false. Reports whether
// the iteration ran to completion. The entries must not be mutated through
// any Map method during the walk.
func (m *Map) ForEach(fn func(*Entry) bool) bool {
	return m.forEach(fn)
}

// QueryWindow appends every entry inside the query's window to the query's
// result collection. Results point at live entries: consume or copy them
// before the next mutation of the map.
func (m *Map) QueryWindow(q *WindowQuery) {
	m.queryWindow(q.min, q.max, func(entry *Entry) {
		q.Entries = append(q.Entries, entry)
	})
}
