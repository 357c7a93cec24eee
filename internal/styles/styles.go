// Package styles implements the layered style model of spec §3: a mapping
// from StyleLayerID to an interval.Tree keyed in character offsets, whose
// payload is an opaque StyleID. Layers are independently replaceable and
// merge in priority order when a cell is assembled.
package styles

import (
	"sort"

	"github.com/dshills/edcore/internal/interval"
	"github.com/lucasb-eyer/go-colorful"
)

// LayerID identifies a style layer. The closed set below covers every
// layer spec.md names; hosts may use any value >= CustomBase for their own
// layers (spec §9 "closed enumeration plus an open CustomN range").
type LayerID uint32

const (
	LayerBase LayerID = iota
	LayerSemanticTokens
	LayerSublimeSyntax
	LayerSimpleSyntax
	LayerDiagnostics
	LayerDocumentHighlights
	// CustomBase is the first LayerID a host may mint for its own layers.
	CustomBase LayerID = 1 << 16
)

// StyleID is an opaque 32-bit tag a host maps to concrete theming.
type StyleID uint32

// RGBA is a simple color a host-defined StyleID may resolve to for the
// purposes of layer blending; most callers never construct these directly,
// since StyleID stays opaque to the kernel, but the resolver needs a way
// to blend two resolved colors when a host asks for it.
type RGBA struct {
	R, G, B, A uint8
}

// Blend mixes two colors in perceptual (Lab) space using go-colorful, with
// t in [0,1] choosing the mix ratio (0 = a, 1 = b).
func Blend(a, b RGBA, t float64) RGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	mixed := ca.BlendLab(cb, t)
	r, g, bl := mixed.Clamped().RGB255()
	alpha := a.A
	if t >= 0.5 {
		alpha = b.A
	}
	return RGBA{R: r, G: g, B: bl, A: alpha}
}

// Manager owns one interval.Tree per active layer.
type Manager struct {
	layers map[LayerID]*interval.Tree
	order  []LayerID // insertion order of layers currently present
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{layers: make(map[LayerID]*interval.Tree)}
}

// ReplaceLayer installs intervals as the full content of layer, replacing
// whatever was there (matches the ProcessingEdit::ReplaceStyleLayer
// contract).
func (m *Manager) ReplaceLayer(layer LayerID, ivs []interval.Interval) {
	t, ok := m.layers[layer]
	if !ok {
		t = interval.New()
		m.layers[layer] = t
		m.order = append(m.order, layer)
	}
	t.Replace(ivs)
}

// ClearLayer empties layer, idempotently (clearing an already-empty layer
// is a no-op, per spec §8 "idempotence" property).
func (m *Manager) ClearLayer(layer LayerID) {
	if t, ok := m.layers[layer]; ok {
		t.Clear()
	}
}

// ApplyEdit shifts every layer's intervals per the edit-shift rule.
func (m *Manager) ApplyEdit(rangeStart, rangeEnd, insertedLen int) {
	for _, layer := range m.order {
		m.layers[layer].ApplyEditSticky(rangeStart, rangeEnd, insertedLen)
	}
}

// StylesAt returns the sorted-unique StyleIDs covering offset, collected
// from every layer in layer-priority order (lower LayerID first) and
// de-duplicated.
func (m *Manager) StylesAt(offset int) []StyleID {
	seen := make(map[StyleID]bool)
	var out []StyleID
	layers := make([]LayerID, len(m.order))
	copy(layers, m.order)
	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })
	for _, layer := range layers {
		for _, iv := range m.layers[layer].PointQuery(offset) {
			id, ok := iv.Payload.(StyleID)
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LayeredSpan is one style interval tagged with its originating layer, the
// element type SpansInRange returns — the shape a layout/snapshot consumer
// merges per cell.
type LayeredSpan struct {
	Layer LayerID
	interval.Interval
}

// SpansInRange returns every style span overlapping [start, end) across
// all layers, ordered by layer priority then start offset.
func (m *Manager) SpansInRange(start, end int) []LayeredSpan {
	layers := make([]LayerID, len(m.order))
	copy(layers, m.order)
	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })
	var out []LayeredSpan
	for _, layer := range layers {
		for _, iv := range m.layers[layer].RangeQuery(start, end) {
			out = append(out, LayeredSpan{Layer: layer, Interval: iv})
		}
	}
	return out
}
