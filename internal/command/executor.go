package command

import (
	"sort"

	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/kernel"
)

// View is the minimal surface the executor needs from a workspace view: a
// buffer to edit, the view's own selection set, its tab width (no command
// reads it; DeleteToPrevTabStop and the indent commands carry their own
// Width), and the logical<->visual conversion the
// view's wrap settings make possible (needed only by MoveVertical /
// AddCursorVertical). internal/workspace.View implements this; defining
// the interface here (rather than depending on internal/workspace)
// keeps the dependency direction leaf-ward, per spec §9's "keep the three
// spaces... as explicit conversion functions" design note.
type View interface {
	Buffer() *kernel.Buffer
	Selections() *cursor.Set
	SetSelections(*cursor.Set)
	TabWidth() int
	LogicalToVisual(char int) (visualRow, x int)
	VisualToLogical(visualRow, x int) int
	PreferredX() int
	SetPreferredX(x int)
}

// Execute interprets cmd against v, the total function of spec §4.3/§6:
// every command either succeeds and returns the Events it produced, or
// fails with a typed *kernel.Error and leaves v/its buffer entirely
// unmodified (spec §7 "errors are returned to the caller without
// mutating state").
func Execute(v View, cmd Command) (Events, error) {
	switch c := cmd.(type) {
	case InsertText:
		return execInsertText(v, c)
	case DeleteBackward:
		return execDeleteBackward(v, c)
	case DeleteForward:
		return execDeleteForward(v, c)
	case ReplaceRange:
		return execReplaceRange(v, c)
	case DuplicateLine:
		return execDuplicateLine(v, c)
	case DeleteLine:
		return execDeleteLine(v, c)
	case JoinLines:
		return execJoinLines(v, c)
	case IndentLines:
		return execIndentLines(v, c.Width, true)
	case OutdentLines:
		return execIndentLines(v, c.Width, false)
	case ToggleLineComment:
		return execToggleLineComment(v, c)
	case DeleteToPrevTabStop:
		return execDeleteToPrevTabStop(v, c)
	case AutoIndentNewline:
		return execAutoIndentNewline(v, c)

	case MoveHorizontal:
		return execMoveHorizontal(v, c)
	case MoveVertical:
		return execMoveVertical(v, c)
	case MoveLineBoundary:
		return execMoveLineBoundary(v, c)
	case SelectTo:
		return execSelectTo(v, c)
	case AddCursorVertical:
		return execAddCursorVertical(v, c)
	case AddNextOccurrence:
		return execAddNextOccurrence(v, c)
	case AddAllOccurrences:
		return execAddAllOccurrences(v, c)
	case SelectLine:
		return execSelectLine(v, c)
	case SelectWord:
		return execSelectWord(v, c)
	case ExpandSelection:
		return execExpandSelection(v, c)

	case SetViewportWidth, SetWrapMode, SetWrapIndent, SetTabWidth, ToggleUserFold, SetScroll:
		return execViewCommand(v, c)

	case ApplyStyleLayer:
		return execApplyStyleLayer(v, c)
	case ClearStyleLayer:
		return execClearStyleLayer(v, c)
	case ReplaceDerivedFolds:
		return execReplaceDerivedFolds(v, c)
	case ReplaceDecorationLayer:
		return execReplaceDecorationLayer(v, c)
	case ClearDecorationLayer:
		return execClearDecorationLayer(v, c)
	case ReplaceDiagnostics:
		return execReplaceDiagnostics(v, c)
	case ClearDiagnostics:
		return execClearDiagnostics(v, c)

	case Undo:
		return execUndo(v, c)
	case Redo:
		return execRedo(v, c)
	case CommitUndoGroup:
		return execCommitUndoGroup(v, c)
	}
	return Events{}, &kernel.Error{Kind: kernel.InvalidCommand, Message: "unrecognized command"}
}

// mergeEditSpecs sorts edits by RangeStart and merges any that overlap,
// taking the union of their deleted ranges and concatenating inserted
// text in document order; this mirrors the selection-merge rule of spec
// §3 ("overlapping selections are merged canonically") applied to the
// edits those selections produce, so per-caret deletions that happen to
// reach into a neighboring caret's territory (e.g. backspacing two
// adjacent empty carets) still produce one valid, non-overlapping batch.
func mergeEditSpecs(edits []kernel.EditSpec) []kernel.EditSpec {
	if len(edits) < 2 {
		return edits
	}
	sorted := append([]kernel.EditSpec(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RangeStart < sorted[j].RangeStart })
	out := sorted[:1]
	for _, e := range sorted[1:] {
		last := &out[len(out)-1]
		if e.RangeStart <= last.RangeEnd {
			if e.RangeEnd > last.RangeEnd {
				last.RangeEnd = e.RangeEnd
			}
			last.InsertedText += e.InsertedText
			continue
		}
		out = append(out, e)
	}
	return out
}

func emptyEvents() Events { return Events{} }
