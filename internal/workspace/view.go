// Package workspace implements the multi-buffer/multi-view coordination
// layer of spec §4.7: buffer and view arenas, per-view layout state, and
// the subscription broadcast that fans an executed command's Events out
// to every interested view.
package workspace

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/layout"
	"github.com/dshills/edcore/internal/styles"
)

// ViewID is an opaque, monotonically-minted view identifier (spec §3
// "BufferId / ViewId"), matching kernel.BufferID's atomic-counter pattern.
type ViewID uint64

var nextViewID uint64

// NewViewID mints a fresh ViewID.
func NewViewID() ViewID {
	return ViewID(atomic.AddUint64(&nextViewID, 1))
}

// View is one presentation of a Buffer: its own selection set, scroll
// position, and wrap/tab layout options, plus the lazily rebuilt
// logical<->visual row index those options imply (spec §4.7 "multiple
// views over one buffer, each with independent scroll/selection/wrap
// state"). It implements command.View, command.Configurable, and
// snapshot.Source.
//
// The row index and per-line layout cache are rebuilt wholesale whenever
// the buffer's version or line count has moved since the last build,
// rather than incrementally maintained edit-by-edit, since the buffer
// does not expose a
// per-edit line-delta hook to this package, only the coarse counters
// already on kernel.Buffer.
type View struct {
	mu sync.Mutex

	id  ViewID
	buf *kernel.Buffer

	selections *cursor.Set

	engine    *layout.Engine
	tabWidth  int
	scrollTop int

	preferredX int

	rowIndex *layout.RowIndex
	layouts  []*layout.LineLayout

	builtVersion   uint64
	builtLineCount int
}

func newView(id ViewID, buf *kernel.Buffer) *View {
	const defaultTabWidth = 4
	v := &View{
		id:         id,
		buf:        buf,
		selections: cursor.NewSet(),
		tabWidth:   defaultTabWidth,
	}
	v.engine = layout.NewEngine(layout.Options{TabWidth: defaultTabWidth, Mode: layout.WrapNone})
	return v
}

// ID returns the view's identifier.
func (v *View) ID() ViewID { return v.id }

// Buffer returns the buffer this view presents.
func (v *View) Buffer() *kernel.Buffer { return v.buf }

// Selections returns the view's current selection set.
func (v *View) Selections() *cursor.Set {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selections
}

// SetSelections replaces the view's selection set.
func (v *View) SetSelections(s *cursor.Set) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selections = s
}

// TabWidth returns the view's configured tab width.
func (v *View) TabWidth() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tabWidth
}

// PreferredX returns the sticky horizontal column used by vertical
// motion (spec §3 "Selection" sticky column).
func (v *View) PreferredX() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.preferredX
}

// SetPreferredX updates the sticky horizontal column.
func (v *View) SetPreferredX(x int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.preferredX = x
}

// ScrollTop returns the topmost visible visual row.
func (v *View) ScrollTop() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTop
}

// --- command.Configurable ---

func (v *View) SetViewportWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	opts := v.engine.Options()
	opts.ViewportW = w
	v.engine.SetOptions(opts)
	v.invalidateLocked()
}

func (v *View) SetWrapMode(mode layout.WrapMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	opts := v.engine.Options()
	opts.Mode = mode
	v.engine.SetOptions(opts)
	v.invalidateLocked()
}

func (v *View) SetWrapIndent(mode layout.IndentMode, fixedCells int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	opts := v.engine.Options()
	opts.Indent = mode
	opts.FixedIndent = fixedCells
	v.engine.SetOptions(opts)
	v.invalidateLocked()
}

func (v *View) SetTabWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w < 1 {
		w = 1
	}
	v.tabWidth = w
	opts := v.engine.Options()
	opts.TabWidth = w
	v.engine.SetOptions(opts)
	v.invalidateLocked()
}

func (v *View) SetScrollTop(top int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if top < 0 {
		top = 0
	}
	v.scrollTop = top
}

// invalidateLocked forces the next ensureBuiltLocked call to rebuild from
// scratch, regardless of whether the buffer's version moved.
func (v *View) invalidateLocked() {
	v.rowIndex = nil
}

// ensureBuiltLocked rebuilds the row index and per-line layout cache if
// the buffer has changed (or layout options were touched) since the last
// build. Callers must hold v.mu.
func (v *View) ensureBuiltLocked() {
	version := v.buf.Version()
	lineCount := v.buf.LineCount()
	if v.rowIndex != nil && version == v.builtVersion && lineCount == v.builtLineCount {
		return
	}

	folded := make(map[int]bool)
	placeholderLine := make(map[int]bool)
	for _, r := range v.buf.Folds.All() {
		if !r.Collapsed {
			continue
		}
		placeholderLine[r.StartLine] = true
		for l := r.StartLine + 1; l <= r.EndLine; l++ {
			folded[l] = true
		}
	}

	ri := layout.NewRowIndex(lineCount)
	layouts := make([]*layout.LineLayout, lineCount)
	for i := 0; i < lineCount; i++ {
		if folded[i] {
			ri.Set(i, 0)
			continue
		}
		text, err := v.buf.LineText(i)
		if err != nil {
			text = ""
		}
		lay := v.engine.Layout(text)
		layouts[i] = lay
		rows := lay.RowCount
		if placeholderLine[i] && rows == 0 {
			rows = 1
		}
		ri.Set(i, rows)
	}

	v.rowIndex = ri
	v.layouts = layouts
	v.builtVersion = version
	v.builtLineCount = lineCount
}

// LogicalToVisual converts a document character offset to its (visual
// row, x cell) position, accounting for wrap and collapsed folds.
func (v *View) LogicalToVisual(char int) (visualRow, x int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ensureBuiltLocked()

	line, col, err := v.buf.CharToLineCol(char)
	if err != nil {
		return 0, 0
	}
	if line >= len(v.layouts) || v.layouts[line] == nil {
		return v.rowIndex.PrefixRows(line), 0
	}
	rowInLine, xCell := v.layouts[line].LogicalToVisual(col)
	return v.rowIndex.PrefixRows(line) + rowInLine, xCell
}

// VisualToLogical converts a (visual row, x cell) position back to a
// document character offset.
func (v *View) VisualToLogical(visualRow, x int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ensureBuiltLocked()

	line, rowInLine := v.rowIndex.LineForRow(visualRow)
	if line >= len(v.layouts) || v.layouts[line] == nil {
		start, _, err := v.buf.LineCharRange(line)
		if err != nil {
			return 0
		}
		return start
	}
	col := v.layouts[line].VisualToLogical(rowInLine, x)
	start, _, err := v.buf.LineCharRange(line)
	if err != nil {
		return 0
	}
	return start + col
}

// --- snapshot.Source ---

func (v *View) LineCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ensureBuiltLocked()
	return v.builtLineCount
}

func (v *View) LineText(line int) (string, error) {
	return v.buf.LineText(line)
}

func (v *View) LineCharStart(line int) int {
	start, _, err := v.buf.LineCharRange(line)
	if err != nil {
		return 0
	}
	return start
}

func (v *View) Layout(line int) *layout.LineLayout {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ensureBuiltLocked()
	if line < 0 || line >= len(v.layouts) || v.layouts[line] == nil {
		return v.engine.Layout("")
	}
	return v.layouts[line]
}

func (v *View) FoldPlaceholder(line int) (string, bool) {
	for _, r := range v.buf.Folds.All() {
		if r.Collapsed && r.StartLine == line {
			return r.Placeholder, true
		}
	}
	return "", false
}

func (v *View) IsFoldedAway(line int) bool {
	for _, r := range v.buf.Folds.All() {
		if r.Collapsed && line > r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}

func (v *View) StylesAt(charOffset int) []styles.StyleID {
	return v.buf.Styles.StylesAt(charOffset)
}
