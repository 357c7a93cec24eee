// Package undo implements the stack-of-groups undo/redo model of spec
// §4.8: two stacks of groups, each group a sequence of TextEdit records
// with selection snapshots, and the coalescing rule that decides whether a
// new edit joins the currently open group or starts a new one.
package undo

import "errors"

// ErrNothingToUndo is returned when Undo is called with an empty undo stack.
var ErrNothingToUndo = errors.New("undo: nothing to undo")

// ErrNothingToRedo is returned when Redo is called with an empty redo stack.
var ErrNothingToRedo = errors.New("undo: nothing to redo")

// TextEdit is {range_char_before, deleted_text, inserted_text,
// selections_before, selections_after}. Selections are stored as opaque
// snapshots (internal/command stores *cursor.Set values) so this package
// does not import cursor; undo only replays recorded snapshots verbatim.
type TextEdit struct {
	RangeStart       int
	RangeEnd         int
	DeletedText      string
	InsertedText     string
	SelectionsBefore any
	SelectionsAfter  any
}

// Group is {group_id, edits}.
type Group struct {
	ID    uint64
	Edits []TextEdit
}

// state is the undo group lifecycle state machine of spec §9: Open while
// a group is accumulating edits, Closed once a boundary condition fires.
type state int

const (
	closed state = iota
	open
)

// Manager owns the undo/redo stacks and the open-group state machine.
type Manager struct {
	undoStack []Group
	redoStack []Group

	state       state
	current     Group
	nextGroupID uint64

	// cleanPointGroupID is the group id considered "saved"; IsModified
	// compares against it.
	cleanPointGroupID uint64
	haveCleanPoint    bool
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{nextGroupID: 1}
}

// isInsertOnly reports whether every edit in g is a pure insertion with no
// newline.
func isInsertOnly(g Group) bool {
	for _, e := range g.Edits {
		if e.DeletedText != "" {
			return false
		}
		if containsNewline(e.InsertedText) {
			return false
		}
	}
	return true
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// RecordEdit appends e to the currently open group, opening a new group if
// none is open or if the coalescing rule says e cannot join the current
// one. selectionJump indicates the caret moved to a non-adjacent location
// immediately before this edit (e.g. the user clicked elsewhere then
// typed), which also forces a new group.
func (m *Manager) RecordEdit(e TextEdit, selectionJump bool) {
	startsNew := m.state == closed || selectionJump || !m.canCoalesce(e)
	if startsNew {
		m.closeGroupLocked()
		m.current = Group{ID: m.nextGroupID}
		m.nextGroupID++
		m.state = open
	}
	m.current.Edits = append(m.current.Edits, e)
	if e.DeletedText != "" || containsNewline(e.InsertedText) {
		// A deletion or a newline-containing insertion closes the group
		// immediately after recording it (the NEXT edit always opens a
		// fresh group), per spec §4.8's coalescing rule.
		m.closeGroupLocked()
	}
	// Clear the redo stack: any new edit invalidates previously-undone
	// history.
	m.redoStack = nil
}

// canCoalesce reports whether e may be appended to the currently open
// group under the pure-insertion-continuation rule: the group contains
// only insertions, e is itself a pure insertion with no newline, and e's
// start equals the prior insertion's end.
func (m *Manager) canCoalesce(e TextEdit) bool {
	if m.state != open || len(m.current.Edits) == 0 {
		return false
	}
	if !isInsertOnly(m.current) {
		return false
	}
	if e.DeletedText != "" || containsNewline(e.InsertedText) {
		return false
	}
	last := m.current.Edits[len(m.current.Edits)-1]
	return e.RangeStart == last.RangeStart+runeCount(last.InsertedText)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// RecordGroup closes any currently open group, then records edits as one
// brand-new closed group, bypassing the per-edit coalescing rule entirely.
// Multi-caret commands and line operations use this: spec §4.3 requires
// "a single UndoStep" regardless of how many selections/edits
// participated, which the ordinary one-edit-at-a-time coalescing in
// RecordEdit cannot express for edits that individually look coalescable
// (e.g. several pure insertions) but must not merge with unrelated
// surrounding typing.
func (m *Manager) RecordGroup(edits []TextEdit) {
	m.closeGroupLocked()
	if len(edits) == 0 {
		return
	}
	g := Group{ID: m.nextGroupID, Edits: append([]TextEdit(nil), edits...)}
	m.nextGroupID++
	m.undoStack = append(m.undoStack, g)
	m.redoStack = nil
}

// LastGroupID returns the id of the most recently closed or currently open
// group, for stamping onto a TextDelta's GroupID.
func (m *Manager) LastGroupID() uint64 {
	if m.state == open {
		return m.current.ID
	}
	if len(m.undoStack) > 0 {
		return m.undoStack[len(m.undoStack)-1].ID
	}
	return 0
}

// CommitGroup closes the currently open group explicitly (CommitUndoGroup).
func (m *Manager) CommitGroup() {
	m.closeGroupLocked()
}

// NotifyCursorJump closes the currently open group if any cursor-only
// command crossed a word boundary or otherwise jumped, per spec §4.8.
func (m *Manager) NotifyCursorJump() {
	m.closeGroupLocked()
}

// MarkSaved closes the currently open group and records the resulting
// state as the clean point (Open Question decision #2: mark_saved closes
// proactively so the clean point always lands on a group boundary).
func (m *Manager) MarkSaved() {
	m.closeGroupLocked()
	m.haveCleanPoint = true
	if len(m.undoStack) > 0 {
		m.cleanPointGroupID = m.undoStack[len(m.undoStack)-1].ID
	} else {
		m.cleanPointGroupID = 0
	}
}

// IsModified reports whether the current group id differs from the clean
// point recorded by MarkSaved. The "current" group is LastGroupID's notion
// of current, which includes a still-open (uncommitted) group: a single
// coalescing keystroke must count as a modification even before anything
// closes its group onto the undo stack.
func (m *Manager) IsModified() bool {
	if !m.haveCleanPoint {
		return m.LastGroupID() != 0
	}
	return m.LastGroupID() != m.cleanPointGroupID
}

func (m *Manager) closeGroupLocked() {
	if m.state != open {
		return
	}
	if len(m.current.Edits) > 0 {
		m.undoStack = append(m.undoStack, m.current)
	}
	m.current = Group{}
	m.state = closed
}

// CanUndo reports whether there is a group to undo.
func (m *Manager) CanUndo() bool {
	return m.state == open && len(m.current.Edits) > 0 || len(m.undoStack) > 0
}

// CanRedo reports whether there is a group to redo.
func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

// PopUndoGroup closes any open group and pops the top undo group, pushing
// it onto the redo stack, and returns it. Callers apply the inverse of the
// group's edits and restore SelectionsBefore of the first edit, per spec
// §4.8.
func (m *Manager) PopUndoGroup() (Group, error) {
	m.closeGroupLocked()
	if len(m.undoStack) == 0 {
		return Group{}, ErrNothingToUndo
	}
	g := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, g)
	return g, nil
}

// PopRedoGroup pops the top redo group, pushing it back onto the undo
// stack, and returns it. Callers apply the group's forward edits in the
// order they were recorded.
func (m *Manager) PopRedoGroup() (Group, error) {
	if len(m.redoStack) == 0 {
		return Group{}, ErrNothingToRedo
	}
	g := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, g)
	return g, nil
}

// Clear discards all undo/redo history.
func (m *Manager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
	m.current = Group{}
	m.state = closed
}

// UndoCount and RedoCount report stack depths, for diagnostics/tests.
func (m *Manager) UndoCount() int { return len(m.undoStack) }
func (m *Manager) RedoCount() int { return len(m.redoStack) }
