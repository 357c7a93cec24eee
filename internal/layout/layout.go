// Package layout computes per-logical-line wrap segmentation and the
// logical<->visual coordinate conversions built on top of it, generalizing
// the teacher's single-mode tab/wrap line layout into the three wrap modes
// and wrap-indent policies of spec §4.5.
package layout

import "github.com/dshills/edcore/internal/charwidth"

// WrapMode selects how a logical line longer than the viewport is split
// into visual rows.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// IndentMode selects how a wrapped continuation row's starting column is
// computed.
type IndentMode int

const (
	IndentNone IndentMode = iota
	IndentMatchLeading
	IndentFixedCells
)

// Options configures an Engine.
type Options struct {
	TabWidth    int
	ViewportW   int // 0 disables wrapping regardless of Mode
	Mode        WrapMode
	Indent      IndentMode
	FixedIndent int // used when Indent == IndentFixedCells
}

// WrapPoint is {char_index_in_line, byte_offset_in_line, start_x_cells},
// the character where a new visual row begins.
type WrapPoint struct {
	CharIndex int
	ByteIndex int
	StartX    int
}

// LineLayout is the visual layout of one logical line: its wrap segments
// plus the column-mapping tables used for cursor placement.
type LineLayout struct {
	Text string

	// Segments always has at least one entry (the line's first row).
	Segments []WrapPoint

	// charRow[i] is the visual row (index into Segments) owning character
	// i; charX[i] is its x-cell column within that row. Both carry one
	// extra trailing entry for the end-of-line sentinel position.
	charRow []int
	charX   []int
	runes   []rune // runes[i] is the rune at character index i

	leadingIndentCells int // visual width of the line's leading whitespace, for IndentMatchLeading

	Width    int // total visual width if laid out on a single unwrapped row
	RowCount int
	HasTabs  bool
	HasWide  bool
}

// Engine computes LineLayouts for logical line text under a fixed set of
// Options.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine; a TabWidth below 1 is normalized to 4.
func NewEngine(opts Options) *Engine {
	if opts.TabWidth < 1 {
		opts.TabWidth = 4
	}
	return &Engine{opts: opts}
}

// Options returns the engine's current configuration.
func (e *Engine) Options() Options { return e.opts }

// SetOptions replaces the engine's configuration.
func (e *Engine) SetOptions(opts Options) {
	if opts.TabWidth < 1 {
		opts.TabWidth = 1
	}
	e.opts = opts
}

// isSoftBreakClass reports whether r is a class of character Word-wrap may
// break after: ASCII whitespace, ASCII punctuation, or a CJK scalar value
// (approximated as any East-Asian-Wide rune, the class charwidth.Width
// reports as 2 cells).
func isSoftBreakClass(r rune) bool {
	switch {
	case r == ' ' || r == '\t':
		return true
	case r >= '!' && r <= '/', r >= ':' && r <= '@', r >= '[' && r <= '`', r >= '{' && r <= '~':
		return true
	default:
		return charwidth.Width(r) == 2
	}
}

type lineChar struct {
	byteOffset int
	r          rune
}

// Layout computes the LineLayout for one logical line of text.
func (e *Engine) Layout(text string) *LineLayout {
	l := &LineLayout{Text: text}

	chars := make([]lineChar, 0, len(text))
	for b, r := range text {
		chars = append(chars, lineChar{byteOffset: b, r: r})
	}
	n := len(chars)
	l.charRow = make([]int, n+1)
	l.charX = make([]int, n+1)
	l.runes = make([]rune, n)
	for i, c := range chars {
		l.runes[i] = c.r
	}
	l.leadingIndentCells = leadingIndentWidth(text, e.opts.TabWidth)
	l.Width = naturalWidth(chars, e.opts.TabWidth)
	for _, c := range chars {
		if c.r == '\t' {
			l.HasTabs = true
		} else if charwidth.Width(c.r) == 2 {
			l.HasWide = true
		}
	}

	wrapEnabled := e.opts.Mode != WrapNone && e.opts.ViewportW > 0
	l.Segments = []WrapPoint{{CharIndex: 0, ByteIndex: 0, StartX: 0}}

	row := 0
	rowStartChar := 0
	x := 0
	lastSoftBreak := -1 // char index AFTER the last soft-break rune seen on this row

	// recomputeRow re-lays-out chars[from:to) starting at x=startX,
	// overwriting their previously committed charRow/charX (used when a
	// word-wrap break point retroactively moves already-visited
	// characters onto a new row).
	recomputeRow := func(from, to, startX int) int {
		cx := startX
		for j := from; j < to; j++ {
			w := charwidth.Width(chars[j].r)
			if chars[j].r == '\t' {
				w = charwidth.TabStop(cx, e.opts.TabWidth)
			}
			l.charRow[j] = row
			l.charX[j] = cx
			cx += w
		}
		return cx
	}

	for i := 0; i < n; i++ {
		r := chars[i].r
		w := charwidth.Width(r)
		if r == '\t' {
			w = charwidth.TabStop(x, e.opts.TabWidth)
		}

		if wrapEnabled && i > rowStartChar && x+w > e.opts.ViewportW {
			breakAt := i
			if e.opts.Mode == WrapWord && lastSoftBreak > rowStartChar {
				breakAt = lastSoftBreak
			}
			row++
			newStartX := e.indentX(l)
			byteAt := len(text)
			if breakAt < n {
				byteAt = chars[breakAt].byteOffset
			}
			l.Segments = append(l.Segments, WrapPoint{CharIndex: breakAt, ByteIndex: byteAt, StartX: newStartX})
			x = recomputeRow(breakAt, i, newStartX)
			rowStartChar = breakAt
			lastSoftBreak = -1
			w = charwidth.Width(r)
			if r == '\t' {
				w = charwidth.TabStop(x, e.opts.TabWidth)
			}
		}

		l.charRow[i] = row
		l.charX[i] = x
		x += w
		if isSoftBreakClass(r) {
			lastSoftBreak = i + 1
		}
	}

	l.charRow[n] = row
	l.charX[n] = x
	l.RowCount = len(l.Segments)
	return l
}

func naturalWidth(chars []lineChar, tabWidth int) int {
	x := 0
	for _, c := range chars {
		if c.r == '\t' {
			x += charwidth.TabStop(x, tabWidth)
		} else {
			x += charwidth.Width(c.r)
		}
	}
	return x
}

func leadingIndentWidth(text string, tabWidth int) int {
	x := 0
	for _, r := range text {
		switch r {
		case ' ':
			x++
		case '\t':
			x += charwidth.TabStop(x, tabWidth)
		default:
			return x
		}
	}
	return x
}

func (e *Engine) indentX(l *LineLayout) int {
	switch e.opts.Indent {
	case IndentFixedCells:
		return e.opts.FixedIndent
	case IndentMatchLeading:
		return l.leadingIndentCells
	default:
		return 0
	}
}

// CharWidth returns the visual cell width occupied by character col, as
// actually laid out (accounting for its row's tab-stop column and any
// word-wrap retroactive repositioning).
func (l *LineLayout) CharWidth(col int) int {
	if col < 0 || col+1 >= len(l.charX) {
		return 0
	}
	if col+1 < len(l.charRow) && l.charRow[col+1] != l.charRow[col] {
		// col is the last character of its row; col+1 starts a new row in
		// a different coordinate frame, so fall back to its natural
		// (unwrapped) width instead of diffing across frames.
		if col < len(l.runes) {
			return charwidth.Width(l.runes[col])
		}
		return 1
	}
	return l.charX[col+1] - l.charX[col]
}

// LogicalToVisual converts a character column within the line to a
// (visual row within the line, x cell) pair, per spec §4.5.
func (l *LineLayout) LogicalToVisual(col int) (row, x int) {
	if len(l.charRow) == 0 {
		return 0, 0
	}
	if col < 0 {
		col = 0
	}
	if col >= len(l.charRow) {
		col = len(l.charRow) - 1
	}
	return l.charRow[col], l.charX[col]
}

// VisualToLogical converts a (row, x) pair back to a character column,
// snapping to the row's last column if x overshoots it.
func (l *LineLayout) VisualToLogical(row, x int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(l.Segments) {
		row = len(l.Segments) - 1
	}
	rowStart := l.Segments[row].CharIndex
	rowEnd := len(l.charRow) - 1
	if row+1 < len(l.Segments) {
		rowEnd = l.Segments[row+1].CharIndex
	}
	best := rowStart
	for c := rowStart; c <= rowEnd && c < len(l.charX); c++ {
		if l.charX[c] > x {
			break
		}
		best = c
	}
	return best
}

// RowCharRange returns the [start,end) character range of visual row.
func (l *LineLayout) RowCharRange(row int) (start, end int) {
	if row < 0 || row >= len(l.Segments) {
		return 0, 0
	}
	start = l.Segments[row].CharIndex
	if row+1 < len(l.Segments) {
		end = l.Segments[row+1].CharIndex
	} else {
		end = len(l.charRow) - 1
	}
	return start, end
}
