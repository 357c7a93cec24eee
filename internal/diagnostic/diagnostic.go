// Package diagnostic implements the diagnostic overlay of spec §3:
// {range_char, severity, message, code?, source?, tags[]}, rendered as a
// style overlay plus available via direct query.
package diagnostic

import "github.com/dshills/edcore/internal/interval"

// Severity mirrors the common editor/LSP severity levels.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is one reported issue anchored to a character range.
type Diagnostic struct {
	Range    interval.Interval
	Severity Severity
	Message  string
	Code     string
	Source   string
	Tags     []string
}

// Manager owns the full diagnostic set as one interval.Tree (diagnostics
// are not layered the way styles/decorations are — spec §6 shows a single
// ReplaceDiagnostics/ClearDiagnostics pair, not a per-layer API).
type Manager struct {
	tree *interval.Tree
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{tree: interval.New()}
}

// Replace installs diags as the full diagnostic set.
func (m *Manager) Replace(diags []Diagnostic) {
	ivs := make([]interval.Interval, len(diags))
	for i, d := range diags {
		ivs[i] = interval.Interval{Start: d.Range.Start, End: d.Range.End, Payload: d}
	}
	m.tree.Replace(ivs)
}

// Clear removes every diagnostic (idempotent).
func (m *Manager) Clear() {
	m.tree.Clear()
}

// ApplyEdit shifts every diagnostic per the edit-shift rule.
func (m *Manager) ApplyEdit(rangeStart, rangeEnd, insertedLen int) {
	m.tree.ApplyEdit(rangeStart, rangeEnd, insertedLen)
}

// All returns every diagnostic, in range-sorted order.
func (m *Manager) All() []Diagnostic {
	all := m.tree.All()
	out := make([]Diagnostic, 0, len(all))
	for _, iv := range all {
		if d, ok := iv.Payload.(Diagnostic); ok {
			d.Range.Start, d.Range.End = iv.Start, iv.End
			out = append(out, d)
		}
	}
	return out
}

// InRange returns diagnostics overlapping [start, end), used to render the
// style overlay for a visible range without walking the full set.
func (m *Manager) InRange(start, end int) []Diagnostic {
	ivs := m.tree.RangeQuery(start, end)
	out := make([]Diagnostic, 0, len(ivs))
	for _, iv := range ivs {
		if d, ok := iv.Payload.(Diagnostic); ok {
			d.Range.Start, d.Range.End = iv.Start, iv.End
			out = append(out, d)
		}
	}
	return out
}
