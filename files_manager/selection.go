package files_manager

import (
	"fmt"
	"sort"
)

// SelectionError reports removal of a position the selection does not have.
type SelectionError struct {
	Index int
	Len   int
}

func (e SelectionError) Error() string {
	return fmt.Sprintf("selection index %d out of range [0,%d)", e.Index, e.Len)
}

// Selection is the ordered set of files picked for conversion. It has a
// single owner and is not safe for concurrent use.
type Selection struct {
	paths []string
	index map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{index: make(map[string]struct{})}
}

// Add appends every path not already present and returns how many were new.
func (s *Selection) Add(paths ...string) int {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	added := 0
	for _, p := range paths {
		if _, ok := s.index[p]; ok {
			continue
		}
		s.index[p] = struct{}{}
		s.paths = append(s.paths, p)
		added++
	}
	return added
}

// RemoveAt drops the entries at the given positions. Positions refer to the
// selection as it was before the call. An out-of-range position panics with
// a SelectionError and leaves the selection untouched.
func (s *Selection) RemoveAt(indices ...int) {
	uniq := make([]int, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.paths) {
			panic(SelectionError{Index: i, Len: len(s.paths)})
		}
		if !seen[i] {
			seen[i] = true
			uniq = append(uniq, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(uniq)))
	for _, i := range uniq {
		delete(s.index, s.paths[i])
		s.paths = append(s.paths[:i], s.paths[i+1:]...)
	}
}

// Paths returns a snapshot; later mutations do not affect it.
func (s *Selection) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

func (s *Selection) Len() int {
	return len(s.paths)
}

func (s *Selection) At(i int) string {
	return s.paths[i]
}

func (s *Selection) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

func (s *Selection) Clear() {
	s.paths = nil
	s.index = make(map[string]struct{})
}
