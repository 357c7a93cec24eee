package command

import "github.com/dshills/edcore/internal/delta"

// ChangeType enumerates the subscription notification categories of spec
// §6, using dot-free Go constant naming (the teacher's
// internal/event/topic package uses dot-namespaced string topics; this
// port keeps the same categories as a closed Go enum instead, since the
// kernel has no plugin/topic registry to extend at runtime).
type ChangeType int

const (
	DocumentModified ChangeType = iota
	SelectionChanged
	ViewportChanged
	StylesChanged
	FoldingChanged
	DecorationsChanged
	DiagnosticsChanged
	SymbolsChanged
)

// StateChange is the payload delivered to a subscriber: spec §6
// "{old_version, new_version, change_type, affected_region?}".
type StateChange struct {
	OldVersion     uint64
	NewVersion     uint64
	ChangeType     ChangeType
	AffectedStart  int
	AffectedEnd    int
	HasAffected    bool
}

// Events is the set of StateChange notifications one command execution
// produces, emitted in the order listed (spec §4.7: Edit commands notify
// every view of the buffer; Cursor/View commands notify only the
// originating view — the executor returns both halves and lets the
// caller, internal/workspace, route them appropriately).
type Events struct {
	// Broadcast is delivered to every view of the affected buffer (Edit,
	// Style, Undo/Redo commands).
	Broadcast []StateChange
	// Local is delivered only to the originating view (Cursor, View
	// commands, plus the SelectionChanged notification a view emits for
	// its own selection shift after a broadcast edit).
	Local []StateChange
	// Edits carries the edit command's delta edits, in the same
	// descending-pre-document-offset order used to apply them, so the
	// workspace can replay them against every sibling view's selection set
	// (spec §4.7 step 3: "Each view also shifts its own selections per
	// §4.2"). Empty for Cursor/View/Style commands, which touch no text.
	Edits []delta.TextEditDelta
}
