package snapshot

import (
	"github.com/dshills/edcore/internal/charwidth"
	"github.com/dshills/edcore/internal/layout"
	"github.com/dshills/edcore/internal/styles"
)

// VisualRow is one row of a HeadlessGrid:
// {logical_line, wrap_segment_index, char_offset_start, char_offset_end,
// start_x_cells, cells, fold_placeholder_appended}.
type VisualRow struct {
	LogicalLine            int
	WrapSegmentIndex        int
	CharOffsetStart         int
	CharOffsetEnd           int
	StartXCells             int
	Cells                   []Cell
	FoldPlaceholderAppended bool
}

// Source is the minimal read surface a buffer+view must expose for grid
// assembly; internal/workspace.View implements it, and this package
// imports neither the kernel nor the workspace.
type Source interface {
	LineCount() int
	LineText(line int) (string, error)
	LineCharStart(line int) int
	Layout(line int) *layout.LineLayout
	// FoldPlaceholder returns the placeholder text to append to a
	// collapsed fold's start line, and whether line is such a start line.
	FoldPlaceholder(line int) (string, bool)
	// IsFoldedAway reports whether line is strictly inside a collapsed
	// fold and must be skipped entirely in visual numbering.
	IsFoldedAway(line int) bool
	StylesAt(charOffset int) []styles.StyleID
}

// BuildHeadlessGrid returns count visual rows starting at startVisualRow.
// It walks logical lines forward from line 0, skipping folded-away lines
// and iterating each visible line's wrap segments, and stops once count
// rows are built. Lines before startVisualRow are still read (LineText)
// and laid out to count their rows; only rows in range are turned into
// cells.
func BuildHeadlessGrid(src Source, startVisualRow, count int) []VisualRow {
	if count <= 0 {
		return nil
	}
	rows := make([]VisualRow, 0, count)

	visualRow := 0
	for line := 0; line < src.LineCount() && len(rows) < count; line++ {
		if src.IsFoldedAway(line) {
			continue
		}
		text, err := src.LineText(line)
		if err != nil {
			continue
		}
		lay := src.Layout(line)
		lineCharStart := src.LineCharStart(line)
		placeholder, hasPlaceholder := src.FoldPlaceholder(line)

		for seg := 0; seg < lay.RowCount; seg++ {
			if visualRow < startVisualRow {
				visualRow++
				continue
			}
			if len(rows) >= count {
				break
			}
			startChar, endChar := lay.RowCharRange(seg)
			cells := cellsForRange(src, lay, text, lineCharStart, startChar, endChar)
			appended := false
			if hasPlaceholder && seg == lay.RowCount-1 {
				for _, r := range placeholder {
					cells = append(cells, Cell{Rune: r, Width: 1})
				}
				appended = true
			}
			rows = append(rows, VisualRow{
				LogicalLine:             line,
				WrapSegmentIndex:        seg,
				CharOffsetStart:         lineCharStart + startChar,
				CharOffsetEnd:           lineCharStart + endChar,
				StartXCells:             lay.Segments[seg].StartX,
				Cells:                   cells,
				FoldPlaceholderAppended: appended,
			})
			visualRow++
		}
	}
	return rows
}

// cellsForRange slices text[startChar:endChar) (character offsets within
// the logical line) into display Cells. Tab cells take the width the
// layout engine already resolved for that column (via lay.CharWidth);
// wide runes emit a rune cell plus a continuation cell.
func cellsForRange(src Source, lay *layout.LineLayout, text string, lineCharStart, startChar, endChar int) []Cell {
	cells := make([]Cell, 0, endChar-startChar)
	i := 0
	for _, r := range text {
		if i >= endChar {
			break
		}
		if i >= startChar {
			docOffset := lineCharStart + i
			sty := src.StylesAt(docOffset)
			if r == '\t' {
				w := lay.CharWidth(i)
				if w < 1 {
					w = 1
				}
				cells = append(cells, Cell{Rune: '\t', Width: w, Styles: sty})
				for k := 1; k < w; k++ {
					cells = append(cells, ContinuationCell())
				}
			} else {
				w := charwidth.Width(r)
				cells = append(cells, Cell{Rune: r, Width: w, Styles: sty})
				if w == 2 {
					cells = append(cells, ContinuationCell())
				}
			}
		}
		i++
	}
	return cells
}
