package cursor

import "sort"

// Edit describes one text edit in character-offset coordinates, the same
// shape storage/interval operate on.
type Edit struct {
	RangeStart   int
	RangeEnd     int
	InsertedText string
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// TransformOffset applies the standard three-case point-transform rule for
// a single edit: unaffected before the edit, shifted after it, or moved to
// the edit's end if it fell inside the deleted range.
func TransformOffset(offset int, e Edit) int {
	return TransformOffsetSticky(offset, e, false)
}

// TransformOffsetSticky is TransformOffset plus the tie-break rule for a
// pure insertion (RangeStart == RangeEnd) landing exactly at offset:
// sticky=true keeps offset pinned before the inserted text; sticky=false
// moves it to the end of the inserted text (it "follows" what was typed).
func TransformOffsetSticky(offset int, e Edit, sticky bool) int {
	insertedLen := runeCount(e.InsertedText)
	switch {
	case e.RangeStart == e.RangeEnd && offset == e.RangeStart:
		if sticky {
			return offset
		}
		return offset + insertedLen
	case offset <= e.RangeStart:
		return offset
	case offset >= e.RangeEnd:
		return offset + (insertedLen - (e.RangeEnd - e.RangeStart))
	default:
		// offset fell strictly inside the deleted range.
		return e.RangeStart + insertedLen
	}
}

// TransformSelection transforms both endpoints of sel for a single edit,
// non-sticky (the default for cursors, which follow typed text).
func TransformSelection(sel Selection, e Edit) Selection {
	sel.Anchor = TransformOffsetSticky(sel.Anchor, e, false)
	sel.Head = TransformOffsetSticky(sel.Head, e, false)
	return sel
}

// TransformSet transforms every selection in s for a single edit and
// re-normalizes.
func TransformSet(s *Set, e Edit) {
	for i := range s.selections {
		s.selections[i] = TransformSelection(s.selections[i], e)
	}
	s.normalize()
}

// TransformSetMulti transforms every selection in s for a batch of edits.
// edits must be in descending RangeStart order (as the command executor
// produces them); they are applied in that same order since each edit's
// pre-image coordinates remain valid for untouched, not-yet-visited
// offsets earlier in the document.
func TransformSetMulti(s *Set, edits []Edit) {
	for _, e := range edits {
		for i := range s.selections {
			s.selections[i] = TransformSelection(s.selections[i], e)
		}
	}
	s.normalize()
}

// SortEditsDescending sorts edits by RangeStart descending, the order the
// multi-caret algorithm (spec §4.3 step 3) requires before application.
func SortEditsDescending(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool { return edits[i].RangeStart > edits[j].RangeStart })
}
