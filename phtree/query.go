package phtree

// WindowQuery is an axis-aligned box query for the Map variant, carrying its
// own result collection. A query can be reused across calls: Set (or Clear)
// empties the collection but keeps its capacity, amortizing allocation.
type WindowQuery struct {
	min, max Point

	// Entries collects the query results. The entries are owned by the
	// tree and invalidated by any mutation after the query ran.
	Entries []*Entry
}

// NewWindowQuery creates a query over the box spanned by min and max. The
// bounds are copied and normalized: dimensions given in reverse order are
// swapped.
func NewWindowQuery(min, max Point) *WindowQuery {
	q := &WindowQuery{}
	q.Set(min, max)

	return q
}

// Set discards any previous results and re-targets the query at a new box.
func (q *WindowQuery) Set(min, max Point) {
	q.Clear()
	q.min, q.max = normalizeWindow(min, max)
}

// Clear zeroes the window and empties the result collection, keeping its
// capacity for reuse.
func (q *WindowQuery) Clear() {
	for d := range q.min {
		q.min[d] = 0
		q.max[d] = 0
	}

	q.Entries = q.Entries[:0]
}

// Center returns the per-dimension half-extent of the window.
func (q *WindowQuery) Center() Point {
	center := make(Point, len(q.min))

	for d := range center {
		center[d] = (q.max[d] - q.min[d]) / 2
	}

	return center
}

// IterFunc is called for every element an Index query visits. data is the
// caller's value passed through QueryRun or ForEach untouched.
type IterFunc func(element, data interface{})

// Query is an axis-aligned box query for the Index variant. Instead of
// collecting results it carries a visitor function that QueryRun applies to
// every element inside the window.
type Query struct {
	min, max Point
	fn       IterFunc
}

// NewQuery creates an empty query. Target it with Index.QuerySet or
// Index.QueryBoxSet before running.
func NewQuery() *Query {
	return &Query{}
}

// Clear zeroes the window and drops the visitor function.
func (q *Query) Clear() {
	for d := range q.min {
		q.min[d] = 0
		q.max[d] = 0
	}

	q.fn = nil
}

// Center returns the per-dimension half-extent of the window.
func (q *Query) Center() Point {
	center := make(Point, len(q.min))

	for d := range center {
		center[d] = (q.max[d] - q.min[d]) / 2
	}

	return center
}
