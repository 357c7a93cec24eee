// Package command implements the tagged-union Command API of spec §6 and
// the total executor function described in spec §4.3/§4.7: a pure
// `(state, Command) -> (state', Events)` mapping, realized in Go as one
// sealed interface per category plus concrete structs per variant, in the
// style of the teacher's internal/engine/history.Command interface shape.
package command

import (
	"github.com/dshills/edcore/internal/decoration"
	"github.com/dshills/edcore/internal/diagnostic"
	"github.com/dshills/edcore/internal/folds"
	"github.com/dshills/edcore/internal/interval"
	"github.com/dshills/edcore/internal/layout"
	"github.com/dshills/edcore/internal/styles"
)

// Command is the sealed tagged union; every variant below implements it
// via an unexported marker method so no type outside this package may
// satisfy it.
type Command interface {
	isCommand()
}

type editCommand struct{}
type cursorCommand struct{}
type viewCommand struct{}
type styleCommand struct{}
type undoCommand struct{}

func (editCommand) isCommand()   {}
func (cursorCommand) isCommand() {}
func (viewCommand) isCommand()   {}
func (styleCommand) isCommand()  {}
func (undoCommand) isCommand()   {}

// --- Edit commands (spec §4.3 "Edit") ---

// InsertText inserts Text at every active cursor/selection, replacing any
// selected range (this single variant covers both "insert" and
// "insert-text-at-every-cursor": ordinary typing always has exactly one
// cursor, multi-caret typing has more, and the multi-caret pipeline is the
// same either way).
type InsertText struct {
	editCommand
	Text string
}

// DeleteBackward deletes one unit before each caret (or the selection, if
// non-empty). ByGrapheme consults the segmentation oracle instead of
// deleting a single scalar value (spec §1's grapheme non-goal carve-out).
type DeleteBackward struct {
	editCommand
	ByGrapheme bool
}

// DeleteForward deletes one unit after each caret (or the selection).
type DeleteForward struct {
	editCommand
	ByGrapheme bool
}

// ReplaceRange replaces one explicit character range with Text, ignoring
// the current selection set (used for programmatic edits, e.g. a
// processor-driven rename).
type ReplaceRange struct {
	editCommand
	Start, End int
	Text       string
}

// DuplicateLine duplicates the logical line each caret sits on.
type DuplicateLine struct{ editCommand }

// DeleteLine deletes the logical line each caret sits on, including its
// trailing newline.
type DeleteLine struct{ editCommand }

// JoinLines joins the logical line each caret sits on with the next line,
// replacing the intervening newline (and any leading whitespace on the
// following line) with a single space.
type JoinLines struct{ editCommand }

// IndentLines inserts Width spaces at the start of every line touched by
// a selection.
type IndentLines struct {
	editCommand
	Width int
}

// OutdentLines removes up to Width leading space or tab characters from
// every line touched by a selection.
type OutdentLines struct {
	editCommand
	Width int
}

// ToggleLineComment toggles a Prefix (e.g. "// ") at the start of every
// line touched by a selection.
type ToggleLineComment struct {
	editCommand
	Prefix string
}

// DeleteToPrevTabStop deletes backward to the previous multiple-of-Width
// column, the soft-tab backspace behavior.
type DeleteToPrevTabStop struct {
	editCommand
	Width int
}

// AutoIndentNewline inserts a newline plus leading whitespace matching the
// current line's indentation.
type AutoIndentNewline struct{ editCommand }

// --- Cursor commands (spec §4.3 "Cursor") ---

// MotionUnit selects what one cursor-motion step advances by.
type MotionUnit int

const (
	UnitChar MotionUnit = iota
	UnitGrapheme
	UnitWord
)

// MoveHorizontal moves (or extends, if Extend) every caret by Delta units
// of Unit (negative Delta moves left/backward).
type MoveHorizontal struct {
	cursorCommand
	Delta  int
	Unit   MotionUnit
	Extend bool
}

// MoveVertical moves (or extends) every caret by Delta visual rows,
// honoring the per-selection sticky column (spec §3 "Selection").
type MoveVertical struct {
	cursorCommand
	Delta  int
	Extend bool
}

// MoveLineBoundary moves to the start (ToStart) or end of the current
// logical line.
type MoveLineBoundary struct {
	cursorCommand
	ToStart bool
	Extend  bool
}

// SelectTo extends (or moves, if !Extend) the primary caret's head to
// Offset.
type SelectTo struct {
	cursorCommand
	Offset int
	Extend bool
}

// AddCursorVertical adds a new caret one visual row above (Delta<0) or
// below (Delta>0) the primary selection's head, at its sticky column.
type AddCursorVertical struct {
	cursorCommand
	Delta int
}

// AddNextOccurrence adds a new selection covering the next occurrence of
// the primary selection's text after the primary selection, wrapping
// around to the document start if none follows. If the primary selection
// is empty it instead expands the primary to the word under the caret
// (dropping the other selections) and adds nothing.
type AddNextOccurrence struct{ cursorCommand }

// AddAllOccurrences replaces the current selection set with one selection
// per occurrence, document-wide, of the primary selection's text.
type AddAllOccurrences struct{ cursorCommand }

// SelectLine replaces each selection with the full range of its logical
// line (including the trailing newline, if any).
type SelectLine struct{ cursorCommand }

// SelectWord replaces each selection with the word under its head.
type SelectWord struct{ cursorCommand }

// ExpandSelection grows each selection to the next larger syntactic unit:
// word -> line -> full buffer (a minimal, host-independent ladder; a real
// syntax-aware ladder is a processor concern, out of scope per spec §1).
type ExpandSelection struct{ cursorCommand }

// --- View commands (spec §4.3 "View") ---

type SetViewportWidth struct {
	viewCommand
	Width int
}

type SetWrapMode struct {
	viewCommand
	Mode layout.WrapMode
}

type SetWrapIndent struct {
	viewCommand
	Indent      layout.IndentMode
	FixedCells  int
}

type SetTabWidth struct {
	viewCommand
	Width int
}

// ToggleUserFold toggles the collapsed state of the user fold starting at
// StartLine, creating one spanning [StartLine, EndLine] if none exists.
type ToggleUserFold struct {
	viewCommand
	StartLine, EndLine int
	Placeholder        string
}

type SetScroll struct {
	viewCommand
	Top int
}

// --- Style commands (spec §4.3 "Style"; typically issued by processors
// via the ProcessingEdit path in internal/processor, but also directly
// invocable as ordinary commands per spec §6). ---

type ApplyStyleLayer struct {
	styleCommand
	Layer     styles.LayerID
	Intervals []interval.Interval
}

type ClearStyleLayer struct {
	styleCommand
	Layer styles.LayerID
}

type ReplaceDerivedFolds struct {
	styleCommand
	Regions []folds.Region
}

type ReplaceDecorationLayer struct {
	styleCommand
	Layer       decoration.LayerID
	Decorations []decoration.Decoration
}

type ClearDecorationLayer struct {
	styleCommand
	Layer decoration.LayerID
}

type ReplaceDiagnostics struct {
	styleCommand
	Diagnostics []diagnostic.Diagnostic
}

type ClearDiagnostics struct{ styleCommand }

// --- UndoRedo commands ---

type Undo struct{ undoCommand }
type Redo struct{ undoCommand }
type CommitUndoGroup struct{ undoCommand }
