package kernel

import "github.com/dshills/edcore/internal/delta"

// UndoResult carries the inverse delta plus the selection snapshot to
// restore (spec §4.8 "restore selections_before of the first edit").
type UndoResult struct {
	Delta            TextDelta
	SelectionsBefore any
}

// Undo pops the top undo group, applies its inverse edits to the document,
// pushes the group onto the redo stack, and returns the resulting
// TextDelta plus the selection snapshot to restore. A multi-edit batch
// (recorded in descending offset order) is inverted by delta.Invert, which
// yields descending post-image offsets; a coalesced typing run (recorded
// in ascending order, each edit against the document the previous one
// left) is inverted edit by edit, last edit first.
func (b *Buffer) Undo() (UndoResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, err := b.undo.PopUndoGroup()
	if err != nil {
		return UndoResult{}, wrapErr(InvalidCommand, err)
	}

	forward := TextDelta{Edits: make([]delta.TextEditDelta, len(group.Edits))}
	for i, e := range group.Edits {
		forward.Edits[i] = delta.TextEditDelta{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, DeletedText: e.DeletedText, InsertedText: e.InsertedText}
	}
	inverse := forward.Invert()
	if len(forward.Edits) > 1 && forward.Edits[0].RangeStart <= forward.Edits[1].RangeStart {
		inverse.Edits = make([]delta.TextEditDelta, 0, len(forward.Edits))
		for i := len(forward.Edits) - 1; i >= 0; i-- {
			inverse.Edits = append(inverse.Edits, forward.Edits[i].Invert())
		}
	}

	before := b.version
	applied, err := b.applyOrdered(inverse.Edits)
	if err != nil {
		return UndoResult{}, err
	}
	b.version++
	d := TextDelta{BeforeVersion: before, AfterVersion: b.version, GroupID: group.ID, Edits: applied}
	b.lastDelta = &d
	b.changeLog = append(b.changeLog, versionedDelta{delta: d})

	return UndoResult{Delta: d, SelectionsBefore: group.Edits[0].SelectionsBefore}, nil
}

// RedoResult carries the re-applied delta plus the selection snapshot to
// restore.
type RedoResult struct {
	Delta           TextDelta
	SelectionsAfter any
}

// Redo pops the top redo group and reapplies its original forward edits
// (valid again, since Undo restored the document to exactly the pre-image
// they were computed against), pushing the group back onto the undo stack.
func (b *Buffer) Redo() (RedoResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, err := b.undo.PopRedoGroup()
	if err != nil {
		return RedoResult{}, wrapErr(InvalidCommand, err)
	}

	forward := make([]delta.TextEditDelta, len(group.Edits))
	for i, e := range group.Edits {
		forward[i] = delta.TextEditDelta{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, InsertedText: e.InsertedText}
	}

	before := b.version
	applied, err := b.applyOrdered(forward)
	if err != nil {
		return RedoResult{}, err
	}
	b.version++
	d := TextDelta{BeforeVersion: before, AfterVersion: b.version, GroupID: group.ID, Edits: applied}
	b.lastDelta = &d
	b.changeLog = append(b.changeLog, versionedDelta{delta: d})

	return RedoResult{Delta: d, SelectionsAfter: group.Edits[len(group.Edits)-1].SelectionsAfter}, nil
}

// CanUndo reports whether there is a group to undo.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.undo.CanUndo()
}

// CanRedo reports whether there is a group to redo.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.undo.CanRedo()
}

// CommitUndoGroup closes the currently open undo group explicitly.
func (b *Buffer) CommitUndoGroup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.undo.CommitGroup()
}

// NotifyCursorJump closes the currently open undo group because a
// cursor-only command crossed a word boundary or otherwise jumped (spec
// §3 "Groups are closed by... any cursor-only command that crosses a word
// boundary").
func (b *Buffer) NotifyCursorJump() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.undo.NotifyCursorJump()
}
