// Package waiter implements the unordered, identity-indexed collection that
// backs the reader and writer pools of the rendezvous engine.
//
// Exported to a separate package, the way the teacher keeps direction and
// attribute helpers in their own leaf packages, because both pool.go and
// any future engine need the exact same push/pop-last/remove-by-index
// contract and it has no business living on either of them.
package waiter

// Set is an unordered collection of comparable handles supporting O(1)
// push, O(1) pop-last, and O(1) removal by identity. It trades order
// (removal swaps the last element into the removed slot) for the ability
// to pick a uniformly random element in O(1), which is what the reader and
// writer pools need for fairness.
//
// The zero value is not usable; construct with New.
type Set[W comparable] struct {
	items []W
	index map[W]int
}

// New returns an empty Set.
func New[W comparable]() *Set[W] {
	return &Set[W]{index: make(map[W]int)}
}

// Len returns the number of stored handles.
func (s *Set[W]) Len() int {
	return len(s.items)
}

// Push appends w. w must not already be present; pushing a duplicate
// handle is a programmer error and corrupts the index.
func (s *Set[W]) Push(w W) {
	s.index[w] = len(s.items)
	s.items = append(s.items, w)
}

// At returns the handle at position i. i must be in [0, Len()).
func (s *Set[W]) At(i int) W {
	return s.items[i]
}

// PopLast removes and returns the handle in the last position: the
// last-pushed one unless a removal has since swapped another handle there.
// ok is false iff the set is empty.
func (s *Set[W]) PopLast() (w W, ok bool) {
	if len(s.items) == 0 {
		return w, false
	}
	return s.RemoveByIndex(len(s.items) - 1), true
}

// RemoveByIndex removes and returns the handle at position i, swapping the
// last element into its place. i must be in [0, Len()); the caller
// guarantees validity, per the engine's contract with this package.
func (s *Set[W]) RemoveByIndex(i int) W {
	last := len(s.items) - 1
	w := s.items[i]
	delete(s.index, w)
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index[moved] = i
	}
	var zero W
	s.items[last] = zero // drop the reference so it can be collected
	s.items = s.items[:last]
	return w
}

// Remove removes w if present; a no-op otherwise.
func (s *Set[W]) Remove(w W) {
	if i, ok := s.index[w]; ok {
		s.RemoveByIndex(i)
	}
}

// Drain removes and returns every stored handle, in whatever order they
// happen to occupy (unspecified — callers that need drain-on-close, the
// only consumer of this method, don't care about order).
func (s *Set[W]) Drain() []W {
	out := s.items
	s.items = nil
	s.index = make(map[W]int)
	return out
}
