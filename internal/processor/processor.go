// Package processor implements the Derived-state API of spec §6:
// ProcessingEdit, a sealed tagged union of overlay-replacement operations
// an external processor returns from `process(state_snapshot)`, plus the
// apply_processor boundary that applies a whole batch atomically against a
// kernel.Buffer.
package processor

import (
	"github.com/dshills/edcore/internal/decoration"
	"github.com/dshills/edcore/internal/diagnostic"
	"github.com/dshills/edcore/internal/folds"
	"github.com/dshills/edcore/internal/interval"
	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/styles"
)

// ProcessingEdit is the sealed tagged union; only the variants below may
// implement it.
type ProcessingEdit interface {
	isProcessingEdit()
}

type processingEdit struct{}

func (processingEdit) isProcessingEdit() {}

// ReplaceStyleLayer replaces layer's full interval content.
type ReplaceStyleLayer struct {
	processingEdit
	Layer     styles.LayerID
	Intervals []interval.Interval
}

// ClearStyleLayer empties a style layer.
type ClearStyleLayer struct {
	processingEdit
	Layer styles.LayerID
}

// ReplaceFoldRegions replaces the derived fold set; Origin is always
// folds.Derived regardless of what a caller sets on the Region values
// (only a host's own ToggleUserFold command may create User-origin
// folds — spec §6 "ReplaceFoldRegions{origin=Derived, regions}").
type ReplaceFoldRegions struct {
	processingEdit
	Regions []folds.Region
}

// ReplaceDecorations replaces a decoration layer's full content.
type ReplaceDecorations struct {
	processingEdit
	Layer       decoration.LayerID
	Decorations []decoration.Decoration
}

// ClearDecorations empties a decoration layer.
type ClearDecorations struct {
	processingEdit
	Layer decoration.LayerID
}

// ReplaceDiagnostics replaces the whole diagnostic set.
type ReplaceDiagnostics struct {
	processingEdit
	Diagnostics []diagnostic.Diagnostic
}

// ClearDiagnostics empties the diagnostic set.
type ClearDiagnostics struct{ processingEdit }

// Symbol is one entry of a document outline (spec §6
// "ReplaceDocumentSymbols{outline}"), following the common
// name/kind/range/children shape of an LSP DocumentSymbol.
type Symbol struct {
	Name     string
	Kind     string
	Range    interval.Interval
	Children []Symbol
}

// ReplaceDocumentSymbols replaces the buffer's outline wholesale.
type ReplaceDocumentSymbols struct {
	processingEdit
	Outline []Symbol
}

// Apply applies edits, in order, against buf, bumping its version once per
// edit (spec §6 "Applied atomically; each application increments
// version"). apply_processor itself has no internal suspension point
// (spec §5): Apply first checks every edit and, if any is unrecognized,
// returns an error without applying any of them; otherwise the whole batch
// runs to completion. It is the host's job to never call Apply with a
// partial edit list from a cancelled processor run.
func Apply(buf *kernel.Buffer, edits []ProcessingEdit) error {
	for _, e := range edits {
		switch e.(type) {
		case ReplaceStyleLayer, ClearStyleLayer, ReplaceFoldRegions, ReplaceDecorations,
			ClearDecorations, ReplaceDiagnostics, ClearDiagnostics, ReplaceDocumentSymbols:
		default:
			return &kernel.Error{Kind: kernel.ProcessorFailed, Message: "unrecognized ProcessingEdit variant"}
		}
	}
	for _, e := range edits {
		switch c := e.(type) {
		case ReplaceStyleLayer:
			buf.Styles.ReplaceLayer(c.Layer, c.Intervals)
		case ClearStyleLayer:
			buf.Styles.ClearLayer(c.Layer)
		case ReplaceFoldRegions:
			buf.Folds.ReplaceDerived(c.Regions)
		case ReplaceDecorations:
			buf.Decorations.ReplaceLayer(c.Layer, c.Decorations)
		case ClearDecorations:
			buf.Decorations.ClearLayer(c.Layer)
		case ReplaceDiagnostics:
			buf.Diagnostics.Replace(c.Diagnostics)
		case ClearDiagnostics:
			buf.Diagnostics.Clear()
		case ReplaceDocumentSymbols:
			buf.SetDocumentSymbols(c.Outline)
		default:
			return &kernel.Error{Kind: kernel.ProcessorFailed, Message: "unrecognized ProcessingEdit variant"}
		}
		buf.BumpVersion()
	}
	return nil
}
