package kernel

import (
	"sort"

	"github.com/dshills/edcore/internal/delta"
	"github.com/dshills/edcore/internal/undo"
)

// EditSpec is one text edit in pre-document character-offset coordinates,
// the shape the command executor builds per spec §4.3 step 1.
type EditSpec struct {
	RangeStart   int
	RangeEnd     int
	InsertedText string
}

// errOverlappingEdits is returned when ApplyEdits is given edits whose
// pre-image ranges overlap, which would make the descending-application
// order of spec §4.3 step 4 ambiguous.
var errOverlappingEdits = newErr(InvalidCommand, "overlapping edit ranges")

// ApplyEdits runs the multi-caret edit pipeline of spec §4.3 steps 3-9 for
// a batch of edits computed by the command executor: sorts them by
// RangeStart descending, applies each to storage/line-index/overlays in
// that order, records one undo group, and builds the resulting TextDelta.
//
// selectionsBefore/selectionsAfter are opaque cursor-set snapshots stored
// verbatim on the undo group (kernel does not import internal/cursor).
//
// forceNewGroup controls undo coalescing for a single-edit batch: true
// records it as its own group, false lets undo.Manager's coalescing rule
// decide. A batch of more than one edit is always recorded as one group of
// its own, whatever forceNewGroup says, so multi-caret typing lands in a
// single undo step (spec §4.3). The command executor passes true for
// ReplaceRange, the line operations and AutoIndentNewline, and false for
// InsertText and the delete commands.
func (b *Buffer) ApplyEdits(edits []EditSpec, selectionsBefore, selectionsAfter any, forceNewGroup bool) (TextDelta, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(edits) == 0 {
		return TextDelta{}, nil
	}

	sorted := append([]EditSpec(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RangeStart > sorted[j].RangeStart })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].RangeEnd > sorted[i-1].RangeStart {
			return TextDelta{}, errOverlappingEdits
		}
	}

	before := b.version
	rawEdits := make([]delta.TextEditDelta, len(sorted))
	for i, e := range sorted {
		rawEdits[i] = delta.TextEditDelta{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, InsertedText: e.InsertedText}
	}
	deltaEdits, err := b.applyOrdered(rawEdits)
	if err != nil {
		return TextDelta{}, err
	}

	undoEdits := make([]undo.TextEdit, len(deltaEdits))
	for i, e := range deltaEdits {
		undoEdits[i] = undo.TextEdit{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, DeletedText: e.DeletedText, InsertedText: e.InsertedText}
	}
	undoEdits[0].SelectionsBefore = selectionsBefore
	undoEdits[len(undoEdits)-1].SelectionsAfter = selectionsAfter

	if forceNewGroup || len(undoEdits) > 1 {
		b.undo.RecordGroup(undoEdits)
	} else {
		b.undo.RecordEdit(undoEdits[0], false)
	}

	b.version++
	d := TextDelta{BeforeVersion: before, AfterVersion: b.version, GroupID: b.undo.LastGroupID(), Edits: deltaEdits}
	b.lastDelta = &d
	b.changeLog = append(b.changeLog, versionedDelta{delta: d})
	return d, nil
}

// TakeLastDelta returns and clears the buffer's buffered delta slot (spec
// §6 "take_last_text_delta").
func (b *Buffer) TakeLastDelta() (TextDelta, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastDelta == nil {
		return TextDelta{}, false
	}
	d := *b.lastDelta
	b.lastDelta = nil
	return d, true
}

// ChangesSince returns every edit applied after revision (exclusive),
// flattened in application order ([EXPANSION] supplemental feature
// grounded in internal/engine/tracking).
func (b *Buffer) ChangesSince(revision uint64) ([]delta.TextEditDelta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if revision > b.version {
		return nil, newErr(OutOfRange, "revision ahead of current version")
	}
	var out []delta.TextEditDelta
	for _, vd := range b.changeLog {
		if vd.delta.AfterVersion > revision {
			out = append(out, vd.delta.Edits...)
		}
	}
	return out, nil
}

// LatestChanges returns the edits of the most recently applied delta, or
// nil if none has been applied yet.
func (b *Buffer) LatestChanges() []delta.TextEditDelta {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.changeLog) == 0 {
		return nil
	}
	return b.changeLog[len(b.changeLog)-1].delta.Edits
}

// applyOrdered applies edits, in the given order, to storage, the line
// index, and every overlay manager, filling in each edit's DeletedText as
// observed immediately before it is applied. Callers (ApplyEdits, Undo,
// Redo) are responsible for presenting edits in an order under which each
// edit's own RangeStart/RangeEnd remain valid against the document as it
// stands at that point in the loop — for non-overlapping edits that is
// either strictly-descending or strictly-ascending-with-recomputed-offsets
// (spec §4.3 step 4 / §4.8's undo/redo ordering). The caller must already
// hold b.mu.
func (b *Buffer) applyOrdered(edits []delta.TextEditDelta) ([]delta.TextEditDelta, error) {
	out := make([]delta.TextEditDelta, len(edits))
	for i, e := range edits {
		if e.RangeStart < 0 || e.RangeEnd > b.text.Len() || e.RangeStart > e.RangeEnd {
			return nil, newErr(OutOfRange, "edit range out of bounds")
		}
		deletedText, err := b.text.GetTextRange(e.RangeStart, e.RangeEnd)
		if err != nil {
			return nil, wrapErr(OutOfRange, err)
		}
		if err := b.text.Replace(e.RangeStart, e.RangeEnd, e.InsertedText); err != nil {
			return nil, wrapErr(OutOfRange, err)
		}

		editLine, _, _ := b.lines.CharToLineCol(e.RangeStart)
		editEndLine, _, _ := b.lines.CharToLineCol(e.RangeEnd)
		deletedNL := countNewlines(deletedText)
		insertedNL := countNewlines(e.InsertedText)

		b.lines.ApplyEdit(e.RangeStart, deletedText, e.InsertedText)

		insertedLen := runeCount(e.InsertedText)
		b.Styles.ApplyEdit(e.RangeStart, e.RangeEnd, insertedLen)
		b.Decorations.ApplyEdit(e.RangeStart, e.RangeEnd, insertedLen)
		b.Diagnostics.ApplyEdit(e.RangeStart, e.RangeEnd, insertedLen)
		b.Folds.ApplyLineEdit(editLine, editEndLine, insertedNL-deletedNL)

		out[i] = delta.TextEditDelta{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, DeletedText: deletedText, InsertedText: e.InsertedText}
	}
	return out, nil
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
