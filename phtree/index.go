package phtree

import "github.com/pkg/errors"

// ElementFuncs are the caller-supplied callbacks that decouple an Index from
// the caller's value types. Create, Destroy, ToKey and ToPoint are required.
type ElementFuncs struct {
	// Create allocates and initializes the caller's element. It runs
	// only on the first insertion at a point; the input is whatever was
	// passed to Insert.
	Create func(input interface{}) interface{}

	// Destroy releases whatever Create allocated. It runs when the
	// element's entry is removed or the index is cleared.
	Destroy func(element interface{})

	// ToKey converts one coordinate of the caller's value into a key.
	// PointSet applies it to each value handed in, so a ToPoint built on
	// PointSet should pass raw coordinates, not keys.
	ToKey func(input interface{}) Key

	// ToPoint converts the caller's value into the point it is indexed
	// under.
	ToPoint func(ix *Index, input interface{}) Point

	// ToBoxPoint converts the caller's value into the doubled-dimension
	// point used by box queries. Optional: when nil, box queries match
	// nothing.
	ToBoxPoint func(ix *Index, input interface{}) Point
}

func (fns *ElementFuncs) validate() error {
	switch {
	case fns.Create == nil:
		return errors.New("phtree: ElementFuncs.Create is required")
	case fns.Destroy == nil:
		return errors.New("phtree: ElementFuncs.Destroy is required")
	case fns.ToKey == nil:
		return errors.New("phtree: ElementFuncs.ToKey is required")
	case fns.ToPoint == nil:
		return errors.New("phtree: ElementFuncs.ToPoint is required")
	}

	return nil
}

// Index is the generic variant: every point holds a single caller-managed
// element, created and destroyed through the callbacks supplied at
// construction.
//
// An Index must not be used from multiple goroutines without external
// locking.
type Index struct {
	tree
	fns ElementFuncs
}

// NewIndex creates a callback-driven tree with the given configuration.
func NewIndex(cfg Config, fns ElementFuncs) (*Index, error) {
	if err := fns.validate(); err != nil {
		return nil, err
	}

	t, err := newTree(cfg)
	if err != nil {
		return nil, err
	}

	return &Index{tree: t, fns: fns}, nil
}

// Insert indexes input and returns its element. The element is created only
// on the first insertion at the input's point; later insertions return the
// existing element unchanged.
func (ix *Index) Insert(input interface{}) interface{} {
	entry := ix.insertPoint(ix.fns.ToPoint(ix, input))

	if entry.Elem == nil {
		entry.Elem = ix.fns.Create(input)
	}

	return entry.Elem
}

// Find returns the element indexed at input's point, or nil.
func (ix *Index) Find(input interface{}) interface{} {
	entry := ix.findEntry(ix.fns.ToPoint(ix, input))
	if entry == nil {
		return nil
	}

	return entry.Elem
}

// Remove deletes the element at input's point, destroying it through the
// Destroy callback. Removing an absent point is a no-op.
func (ix *Index) Remove(input interface{}) {
	ix.removePoint(ix.fns.ToPoint(ix, input), ix.dropEntry)
}

func (ix *Index) dropEntry(entry *Entry) {
	if entry.Elem != nil {
		ix.fns.Destroy(entry.Elem)
		entry.Elem = nil
	}
}

// Empty reports whether the index holds no elements.
func (ix *Index) Empty() bool {
	return ix.empty()
}

// Clear removes every element from the index, destroying each through the
// Destroy callback.
func (ix *Index) Clear() {
	ix.clear(ix.dropEntry)
}

// ForEach runs fn on every element in the index. data is passed through to
// fn untouched.
func (ix *Index) ForEach(fn IterFunc, data interface{}) {
	if fn == nil {
		return
	}

	ix.forEach(func(entry *Entry) bool {
		fn(entry.Elem, data)
		return true
	})
}

// PointSet assembles a point by running the ToKey callback on each input.
// Meant to be used inside a ToPoint callback.
func (ix *Index) PointSet(inputs ...interface{}) Point {
	p := make(Point, len(inputs))

	for d, input := range inputs {
		p[d] = ix.fns.ToKey(input)
	}

	return p
}

// BoxPointSet assembles a box point - a Dims-dimensional point representing
// a (Dims/2)-dimensional one - by running the ToKey callback on each input
// and mirroring the keys into both halves. Meant to be used inside a
// ToBoxPoint callback; takes Dims/2 inputs.
func (ix *Index) BoxPointSet(inputs ...interface{}) Point {
	var (
		p    = make(Point, ix.dims)
		half = ix.dims / 2
	)

	for d, input := range inputs {
		p[d] = ix.fns.ToKey(input)
		p[half+d] = p[d]
	}

	return p
}

// QuerySet targets q at the window spanned by min and max, which are
// converted through the ToPoint callback. fn will run on every element
// inside the window when the query is run.
func (ix *Index) QuerySet(q *Query, min, max interface{}, fn IterFunc) {
	if q == nil {
		return
	}

	ix.querySet(q, ix.fns.ToPoint(ix, min), ix.fns.ToPoint(ix, max), fn)
}

// QueryBoxSet targets q at a box-vs-box query: the elements of the index
// represent (Dims/2)-dimensional boxes stored as Dims-dimensional box
// points, and min/max span the query region, converted through the
// ToBoxPoint callback.
//
// With intersect false only boxes entirely contained in the region match.
// With intersect true any box that overlaps the region matches: the region's
// lower-bound half is widened to zero and its upper-bound half to the key
// maximum, turning containment of the box point into intersection of the
// box.
//
// When the index has no ToBoxPoint callback the query is left with a zero
// window, which matches nothing useful.
func (ix *Index) QueryBoxSet(q *Query, intersect bool, min, max interface{}, fn IterFunc) {
	if q == nil {
		return
	}

	if ix.fns.ToBoxPoint == nil {
		q.min = make(Point, ix.dims)
		q.max = make(Point, ix.dims)
		q.fn = fn

		return
	}

	var (
		lo   = ix.fns.ToBoxPoint(ix, min)
		hi   = ix.fns.ToBoxPoint(ix, max)
		half = ix.dims / 2
	)

	if intersect {
		for d := 0; d < half; d++ {
			lo[d] = 0
		}

		for d := half; d < ix.dims; d++ {
			hi[d] = keyMask(ix.width)
		}
	}

	ix.querySet(q, lo, hi, fn)
}

// QueryBoxPointSet targets q at a point-vs-box query: it matches every
// stored box that contains the given (Dims/2)-dimensional point.
func (ix *Index) QueryBoxPointSet(q *Query, point interface{}, fn IterFunc) {
	ix.QueryBoxSet(q, true, point, point, fn)
}

func (ix *Index) querySet(q *Query, min, max Point, fn IterFunc) {
	q.Clear()
	q.min, q.max = normalizeWindow(min, max)
	q.fn = fn
}

// QueryRun applies the query's visitor function to every element inside its
// window. data is passed through to the visitor untouched.
func (ix *Index) QueryRun(q *Query, data interface{}) {
	if q == nil || q.fn == nil {
		return
	}

	ix.queryWindow(q.min, q.max, func(entry *Entry) {
		q.fn(entry.Elem, data)
	})
}
