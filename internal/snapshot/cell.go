// Package snapshot assembles the read-only HeadlessGrid view of spec §4.6
// for a visible visual-row range. The decoration-composed grid and the
// Minimap are not built by this package.
package snapshot

import "github.com/dshills/edcore/internal/styles"

// Cell is one visual cell: a rune (possibly the trailing half of a
// wide-rune pair, marked by Continuation), its display width, and the
// sorted-unique set of style IDs covering it.
type Cell struct {
	Rune         rune
	Width        int
	Styles       []styles.StyleID
	Continuation bool // true for the second cell of a wide rune
}

// ContinuationCell is the placeholder occupying the second visual column
// of a wide rune.
func ContinuationCell() Cell {
	return Cell{Continuation: true}
}
