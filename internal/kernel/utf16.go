package kernel

import "unicode/utf16"

// CharToUTF16 converts a character offset to (utf16_line, utf16_character)
// by counting UTF-16 code units across line.text[0:col] (surrogate pairs
// count as 2), the external conversion boundary of spec §6 used when
// bridging to line-server protocols.
func (b *Buffer) CharToUTF16(char int) (line, utf16Col int, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lineNo, col, err := b.lines.CharToLineCol(char)
	if err != nil {
		return 0, 0, wrapErr(OutOfRange, err)
	}
	start, _, _ := b.lines.LineCharRange(lineNo)
	text, err := b.text.GetTextRange(start, start+col)
	if err != nil {
		return 0, 0, wrapErr(OutOfRange, err)
	}
	return lineNo, utf16Units(text), nil
}

// UTF16ToChar converts (utf16_line, utf16_character) to a character
// offset, walking the line's text and counting UTF-16 units per rune until
// utf16Col is reached.
func (b *Buffer) UTF16ToChar(line, utf16Col int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end, err := b.lines.LineCharRange(line)
	if err != nil {
		return 0, wrapErr(OutOfRange, err)
	}
	text, err := b.text.GetTextRange(start, end)
	if err != nil {
		return 0, wrapErr(OutOfRange, err)
	}

	units := 0
	col := 0
	for _, r := range text {
		if units >= utf16Col {
			break
		}
		n := utf16.RuneLen(r)
		if n < 1 {
			n = 1
		}
		units += n
		col++
	}
	return start + col, nil
}

// utf16Units returns the number of UTF-16 code units needed to represent
// s (surrogate pairs count as 2).
func utf16Units(s string) int {
	n := 0
	for _, r := range s {
		u := utf16.RuneLen(r)
		if u < 1 {
			u = 1
		}
		n += u
	}
	return n
}
