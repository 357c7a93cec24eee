package cursor

import "sort"

// Set is the per-view multi-caret state: {primary, secondaries...}. The
// first element is always the primary selection. The set is kept
// constrained: no two elements overlap after every command (spec §3).
type Set struct {
	selections []Selection
}

// NewSet returns a Set with a single caret at offset 0.
func NewSet() *Set {
	return &Set{selections: []Selection{NewCursor(0)}}
}

// NewSetAt returns a Set with a single caret at offset.
func NewSetAt(offset int) *Set {
	return &Set{selections: []Selection{NewCursor(offset)}}
}

// NewSetFrom returns a Set built from sels, normalized immediately.
func NewSetFrom(sels []Selection) *Set {
	s := &Set{selections: append([]Selection{}, sels...)}
	s.normalize()
	return s
}

// Primary returns the primary (first) selection.
func (s *Set) Primary() Selection { return s.selections[0] }

// All returns every selection, primary first.
func (s *Set) All() []Selection {
	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}

// Count returns the number of selections.
func (s *Set) Count() int { return len(s.selections) }

// IsMulti reports whether more than one selection is active.
func (s *Set) IsMulti() bool { return len(s.selections) > 1 }

// SetPrimary replaces the whole set with a single selection.
func (s *Set) SetPrimary(sel Selection) {
	s.selections = []Selection{sel}
}

// SetAll replaces every selection, then normalizes (merges overlaps,
// sorts).
func (s *Set) SetAll(sels []Selection) {
	s.selections = append([]Selection{}, sels...)
	s.normalize()
}

// Add appends a new selection (e.g. add-cursor-above/below,
// add-next-occurrence), then normalizes.
func (s *Set) Add(sel Selection) {
	s.selections = append(s.selections, sel)
	s.normalize()
}

// Map applies f to every selection and re-normalizes, used by cursor-move
// commands that act identically on each caret.
func (s *Set) Map(f func(Selection) Selection) {
	for i := range s.selections {
		s.selections[i] = f(s.selections[i])
	}
	s.normalize()
}

// Clamp constrains every selection to [0, maxChar].
func (s *Set) Clamp(maxChar int) {
	for i := range s.selections {
		s.selections[i] = s.selections[i].Clamp(maxChar)
	}
	s.normalize()
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{selections: append([]Selection{}, s.selections...)}
}

// normalize sorts selections by Start (ties broken by larger range first)
// then merges overlapping/touching selections, per spec §3.
func (s *Set) normalize() {
	if len(s.selections) == 0 {
		s.selections = []Selection{NewCursor(0)}
		return
	}
	sort.SliceStable(s.selections, func(i, j int) bool {
		a, b := s.selections[i], s.selections[j]
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() > b.End()
	})
	merged := s.selections[:1]
	for _, sel := range s.selections[1:] {
		last := merged[len(merged)-1]
		if last.Touches(sel) {
			merged[len(merged)-1] = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	s.selections = merged
}
