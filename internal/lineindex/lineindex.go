// Package lineindex maintains the line-start offset table used for O(log N)
// line/character conversions (spec §4.5). It is kept consistent with
// storage by receiving the same edit applied there; it stores no text of
// its own, only the character offset at which each logical line begins.
package lineindex

import (
	"errors"
	"sort"
	"strings"
)

// ErrOutOfRange is returned for a line or char offset outside current
// bounds.
var ErrOutOfRange = errors.New("lineindex: out of range")

// Index is the incrementally-maintained line-start table.
type Index struct {
	// lineStarts[i] is the character offset at which logical line i
	// begins. lineStarts[0] is always 0.
	lineStarts []int
	totalChars int
}

// New returns an Index for an empty document (one empty line).
func New() *Index {
	return &Index{lineStarts: []int{0}}
}

// NewFromString builds an Index from the char-count-annotated text.
func NewFromString(text string) *Index {
	idx := &Index{lineStarts: []int{0}}
	pos := 0
	for _, r := range text {
		pos++
		if r == '\n' {
			idx.lineStarts = append(idx.lineStarts, pos)
		}
	}
	idx.totalChars = pos
	return idx
}

// LineCount returns the number of logical lines (always >= 1).
func (idx *Index) LineCount() int { return len(idx.lineStarts) }

// TotalChars returns the total character count tracked by the index.
func (idx *Index) TotalChars() int { return idx.totalChars }

// LineCharRange returns the half-open character range [start, end) spanned
// by logical line i, excluding the line's own trailing newline (end points
// just before it, or to TotalChars() for the final line).
func (idx *Index) LineCharRange(line int) (start, end int, err error) {
	if line < 0 || line >= len(idx.lineStarts) {
		return 0, 0, ErrOutOfRange
	}
	start = idx.lineStarts[line]
	if line+1 < len(idx.lineStarts) {
		end = idx.lineStarts[line+1] - 1
	} else {
		end = idx.totalChars
	}
	return start, end, nil
}

// CharToLineCol converts a character offset to (line, column).
func (idx *Index) CharToLineCol(char int) (line, col int, err error) {
	if char < 0 || char > idx.totalChars {
		return 0, 0, ErrOutOfRange
	}
	line = sort.SearchInts(idx.lineStarts, char+1) - 1
	if line < 0 {
		line = 0
	}
	col = char - idx.lineStarts[line]
	return line, col, nil
}

// LineColToChar converts (line, column) to a character offset. Column is
// clamped to the line's length rather than erroring, matching typical
// editor "move to end of shorter line" behavior; an out-of-range line
// still errors.
func (idx *Index) LineColToChar(line, col int) (int, error) {
	if line < 0 || line >= len(idx.lineStarts) {
		return 0, ErrOutOfRange
	}
	start, end, _ := idx.LineCharRange(line)
	c := start + col
	if c > end {
		c = end
	}
	if c < start {
		c = start
	}
	return c, nil
}

// ApplyEdit updates the index for an edit that deleted deletedText and
// inserted insertedText starting at character offset startChar, mirroring
// the same edit applied to storage. It must be called with the *pre-edit*
// startChar and the literal deleted/inserted text (character counts, not
// byte counts, drive all arithmetic).
func (idx *Index) ApplyEdit(startChar int, deletedText, insertedText string) {
	deletedChars := charCount(deletedText)
	insertedChars := charCount(insertedText)
	endChar := startChar + deletedChars
	delta := insertedChars - deletedChars

	lo := sort.SearchInts(idx.lineStarts, startChar+1)
	hi := sort.SearchInts(idx.lineStarts, endChar+1)

	kept := make([]int, 0, len(idx.lineStarts)-(hi-lo)+strings.Count(insertedText, "\n"))
	kept = append(kept, idx.lineStarts[:lo]...)

	pos := 0
	for _, r := range insertedText {
		pos++
		if r == '\n' {
			kept = append(kept, startChar+pos)
		}
	}

	for _, v := range idx.lineStarts[hi:] {
		kept = append(kept, v+delta)
	}

	idx.lineStarts = kept
	idx.totalChars += delta
}

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
