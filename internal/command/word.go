package command

import (
	"unicode"

	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/segment"
)

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// prevBoundary returns the character offset immediately before offset that
// a backward motion should land on, one grapheme cluster or one scalar
// value back depending on byGrapheme. It never crosses a line boundary:
// at column 0, it steps back exactly one character (onto the preceding
// line's newline), matching ordinary backspace-at-line-start behavior.
func prevBoundary(buf *kernel.Buffer, offset int, byGrapheme bool) int {
	if offset <= 0 {
		return 0
	}
	if !byGrapheme {
		return offset - 1
	}
	line, col, err := buf.CharToLineCol(offset)
	if err != nil || col == 0 {
		return offset - 1
	}
	lineStart, _, _ := buf.LineCharRange(line)
	text, err := buf.TextRange(lineStart, lineStart+col)
	if err != nil {
		return offset - 1
	}
	return lineStart + segment.PrevBoundary(text, col)
}

// nextBoundary is prevBoundary's forward counterpart.
func nextBoundary(buf *kernel.Buffer, offset int, byGrapheme bool) int {
	total := buf.CharCount()
	if offset >= total {
		return total
	}
	if !byGrapheme {
		return offset + 1
	}
	line, col, err := buf.CharToLineCol(offset)
	if err != nil {
		return offset + 1
	}
	lineStart, lineEnd, _ := buf.LineCharRange(line)
	if lineStart+col >= lineEnd {
		return offset + 1
	}
	text, err := buf.TextRange(lineStart, lineEnd)
	if err != nil {
		return offset + 1
	}
	return lineStart + segment.NextBoundary(text, col)
}

// prevWordBoundary returns the start of the word run (or whitespace run)
// ending at-or-before offset, skipping one run of whitespace then one run
// of word/non-word characters, the common "ctrl+backspace" word motion.
func prevWordBoundary(buf *kernel.Buffer, offset int) int {
	line, col, err := buf.CharToLineCol(offset)
	if err != nil {
		return offset
	}
	lineStart, _, _ := buf.LineCharRange(line)
	if col == 0 {
		if offset == 0 {
			return 0
		}
		return offset - 1
	}
	text, err := buf.TextRange(lineStart, lineStart+col)
	if err != nil {
		return offset
	}
	runes := []rune(text)
	i := len(runes)
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	if i > 0 {
		word := isWordRune(runes[i-1])
		for i > 0 && isWordRune(runes[i-1]) == word && !unicode.IsSpace(runes[i-1]) {
			i--
		}
	}
	return lineStart + i
}

// wordRangeAt returns the [start, end) character range of the word (or, if
// offset sits on whitespace/punctuation, the run of same-class characters)
// touching offset, without crossing a line boundary. Used by SelectWord and
// the word rung of ExpandSelection's ladder.
func wordRangeAt(buf *kernel.Buffer, offset int) (int, int) {
	line, col, err := buf.CharToLineCol(offset)
	if err != nil {
		return offset, offset
	}
	lineStart, lineEnd, _ := buf.LineCharRange(line)
	text, err := buf.TextRange(lineStart, lineEnd)
	if err != nil {
		return offset, offset
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return lineStart, lineStart
	}
	i := col
	if i >= len(runes) {
		i = len(runes) - 1
	}
	if i < 0 {
		i = 0
	}
	word := isWordRune(runes[i])
	start := i
	for start > 0 && isWordRune(runes[start-1]) == word {
		start--
	}
	end := i
	for end < len(runes) && isWordRune(runes[end]) == word {
		end++
	}
	return lineStart + start, lineStart + end
}

// nextWordBoundary is prevWordBoundary's forward counterpart.
func nextWordBoundary(buf *kernel.Buffer, offset int) int {
	line, col, err := buf.CharToLineCol(offset)
	if err != nil {
		return offset
	}
	lineStart, lineEnd, _ := buf.LineCharRange(line)
	if lineStart+col >= lineEnd {
		if lineEnd < buf.CharCount() {
			return lineEnd + 1
		}
		return lineEnd
	}
	text, err := buf.TextRange(lineStart+col, lineEnd)
	if err != nil {
		return offset
	}
	runes := []rune(text)
	i := 0
	if i < len(runes) {
		word := isWordRune(runes[i])
		for i < len(runes) && isWordRune(runes[i]) == word && !unicode.IsSpace(runes[i]) {
			i++
		}
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return lineStart + col + i
}
