package selection

import "sort"

// Set tracks which of a fixed number of items are marked
type Set struct {
	size     int
	selected map[int]bool
}

// New creates an empty selection over size items
func New(size int) *Set {
	return &Set{
		size:     size,
		selected: make(map[int]bool),
	}
}

// Of creates a selection with the given indices marked
func Of(size int, indices ...int) *Set {
	s := New(size)
	for _, i := range indices {
		s.Set(i, true)
	}
	return s
}

// Size returns the number of items the selection covers
func (s *Set) Size() int {
	return s.size
}

// Toggle flips the mark at index
func (s *Set) Toggle(index int) {
	s.Set(index, !s.Has(index))
}

// Set marks or unmarks index. Out of range indices are ignored.
func (s *Set) Set(index int, on bool) {
	if index < 0 || index >= s.size {
		return
	}
	if on {
		s.selected[index] = true
	} else {
		delete(s.selected, index)
	}
}

// Has reports whether index is marked
func (s *Set) Has(index int) bool {
	return s.selected[index]
}

// AllSelected is true when every item is marked. An empty set is never fully selected.
func (s *Set) AllSelected() bool {
	return s.size > 0 && len(s.selected) == s.size
}

// ToggleAll selects every item unless all already are, in which case it clears them
func (s *Set) ToggleAll() {
	if s.AllSelected() {
		s.selected = make(map[int]bool)
		return
	}
	for i := 0; i < s.size; i++ {
		s.selected[i] = true
	}
}

// Count returns the number of marked items
func (s *Set) Count() int {
	return len(s.selected)
}

// Indices returns the marked indices in ascending order
func (s *Set) Indices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
