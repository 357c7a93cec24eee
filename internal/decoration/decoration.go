// Package decoration implements the virtual-cell decoration overlay of
// spec §3: ranges tagged with a placement, kind, optional text, styles,
// and tooltip, that never change document offsets themselves but may
// inject virtual cells into composed snapshots.
package decoration

import "github.com/dshills/edcore/internal/interval"

// Placement is where a decoration's virtual content is injected relative
// to its anchor range.
type Placement int

const (
	Inline Placement = iota
	Before
	After
)

// Decoration is {range_char, placement, kind, text?, styles, tooltip?, data?}.
type Decoration struct {
	Range     interval.Interval // Start/End are the anchor char range
	Placement Placement
	Kind      string
	Text      string
	Styles    []uint32
	Tooltip   string
	Data      any
}

// LayerID groups decorations the way style layers group styles (spec §9
// "closed enumeration plus an open CustomN range" applies here too).
type LayerID uint32

// Manager owns one interval.Tree per decoration layer; the payload of each
// interval is a Decoration.
type Manager struct {
	layers map[LayerID]*interval.Tree
	order  []LayerID
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{layers: make(map[LayerID]*interval.Tree)}
}

// ReplaceLayer installs decorations as the full content of layer.
func (m *Manager) ReplaceLayer(layer LayerID, decs []Decoration) {
	t, ok := m.layers[layer]
	if !ok {
		t = interval.New()
		m.layers[layer] = t
		m.order = append(m.order, layer)
	}
	ivs := make([]interval.Interval, len(decs))
	for i, d := range decs {
		ivs[i] = interval.Interval{Start: d.Range.Start, End: d.Range.End, Payload: d}
	}
	t.Replace(ivs)
}

// ClearLayer empties layer (idempotent).
func (m *Manager) ClearLayer(layer LayerID) {
	if t, ok := m.layers[layer]; ok {
		t.Clear()
	}
}

// ApplyEdit shifts every layer's decorations per the edit-shift rule.
// Decorations never change document offsets themselves, but their anchor
// ranges are document-offset-keyed and so must track edits exactly like
// any other interval overlay.
func (m *Manager) ApplyEdit(rangeStart, rangeEnd, insertedLen int) {
	for _, layer := range m.order {
		m.layers[layer].ApplyEdit(rangeStart, rangeEnd, insertedLen)
	}
}

// InRange returns every decoration across every layer overlapping
// [start, end).
func (m *Manager) InRange(start, end int) []Decoration {
	var out []Decoration
	for _, layer := range m.order {
		for _, iv := range m.layers[layer].RangeQuery(start, end) {
			if d, ok := iv.Payload.(Decoration); ok {
				d.Range.Start, d.Range.End = iv.Start, iv.End
				out = append(out, d)
			}
		}
	}
	return out
}
