// Package charwidth computes the display width, in terminal cells, of
// Unicode scalar values and tab stops.
package charwidth

import (
	"unicode"

	"golang.org/x/text/width"
)

// Width returns the number of cells a rune occupies when rendered:
// 2 for wide (East Asian Wide/Fullwidth) runes, 0 for combining marks and
// other zero-width runes, 1 otherwise.
func Width(r rune) int {
	if r == 0 {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Cf, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	if isZeroWidth(r) {
		return 0
	}
	return 1
}

// zeroWidthRunes lists specific zero-width scalar values not already caught
// by the Mn/Me/Cf general categories (zero-width space is category Cf on
// some Unicode versions but is listed explicitly for safety).
var zeroWidthRunes = map[rune]bool{
	'​': true, // zero width space
	'‌': true, // zero width non-joiner
	'‍': true, // zero width joiner
	'﻿': true, // byte order mark / zero width no-break space
}

// isZeroWidth reports control and other non-printing scalar values that
// carry no display width of their own (newlines are handled by callers,
// never passed here as ordinary cells).
func isZeroWidth(r rune) bool {
	if zeroWidthRunes[r] {
		return true
	}
	return r < 0x20 && r != '\t'
}

// StringWidth sums Width over every rune in s.
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += Width(r)
	}
	return total
}

// TabStop returns the number of cells a tab occupies when its leading edge
// sits at visual column col, for the given tab width.
func TabStop(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	return tabWidth - (col % tabWidth)
}
