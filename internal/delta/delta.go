// Package delta implements the TextDelta/TextEditDelta self-describing
// change records of spec §3: the structure an external incremental
// consumer needs to replay one command's edits against a copy of the
// pre-image.
package delta

// TextEditDelta is one edit within a TextDelta: the pre-document character
// range it replaced, what was deleted, and what was inserted.
type TextEditDelta struct {
	RangeStart   int
	RangeEnd     int
	DeletedText  string
	InsertedText string
}

// NewRangeEnd returns the end of the half-open post-edit character range
// [RangeStart, NewRangeEnd()) this edit's inserted text now occupies,
// computed from RangeStart and the inserted text's rune count.
func (e TextEditDelta) NewRangeEnd() int {
	n := 0
	for range e.InsertedText {
		n++
	}
	return e.RangeStart + n
}

// Invert returns the edit that undoes e: deleting what was inserted and
// re-inserting what was deleted, anchored at the same start offset.
func (e TextEditDelta) Invert() TextEditDelta {
	return TextEditDelta{
		RangeStart:   e.RangeStart,
		RangeEnd:     e.NewRangeEnd(),
		DeletedText:  e.InsertedText,
		InsertedText: e.DeletedText,
	}
}

// TextDelta is {before_version, after_version, group_id, edits}. Edits are
// emitted in descending pre-document offset order (spec §4.3), so they can
// be applied sequentially to a copy of the pre-image.
type TextDelta struct {
	BeforeVersion uint64
	AfterVersion  uint64
	GroupID       uint64
	Edits         []TextEditDelta
}

// IsEmpty reports whether the delta carries no edits.
func (d TextDelta) IsEmpty() bool { return len(d.Edits) == 0 }

// Invert returns the delta that undoes d. d.Edits must be in descending
// pre-document-offset order (as the command executor emits them); the
// result is in descending POST-document-offset order, ready to be Applied
// directly to d's post-image to recover its pre-image.
//
// Each original edit's post-image position depends on the cumulative
// length change of every edit that preceded it in the pre-image (i.e. every
// edit with a smaller RangeStart, since edits never overlap); this walks
// the edits in ascending pre-image order accumulating that offset.
func (d TextDelta) Invert() TextDelta {
	out := TextDelta{BeforeVersion: d.AfterVersion, AfterVersion: d.BeforeVersion, GroupID: d.GroupID}
	n := len(d.Edits)
	out.Edits = make([]TextEditDelta, n)
	cumDelta := 0
	for i := n - 1; i >= 0; i-- {
		e := d.Edits[i]
		postStart := e.RangeStart + cumDelta
		postEnd := postStart + runeCount(e.InsertedText)
		out.Edits[i] = TextEditDelta{
			RangeStart:   postStart,
			RangeEnd:     postEnd,
			DeletedText:  e.InsertedText,
			InsertedText: e.DeletedText,
		}
		cumDelta += runeCount(e.InsertedText) - runeCount(e.DeletedText)
	}
	return out
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Apply replays d's edits, in order, against text, returning the result.
// Edits must already be in descending RangeStart order (as emitted by the
// command executor) for this to produce the correct post-image from a
// pre-image string.
func Apply(text string, edits []TextEditDelta) string {
	runes := []rune(text)
	for _, e := range edits {
		ins := []rune(e.InsertedText)
		tail := append([]rune{}, runes[e.RangeEnd:]...)
		head := append([]rune{}, runes[:e.RangeStart]...)
		head = append(head, ins...)
		runes = append(head, tail...)
	}
	return string(runes)
}
