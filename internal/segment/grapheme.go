// Package segment provides the grapheme-cluster segmentation oracle that
// cursor and delete commands consult. Storage itself is indexed in Unicode
// scalar values only; grapheme awareness lives entirely in this package.
package segment

import "github.com/rivo/uniseg"

// Boundaries returns the character-offset boundaries of every grapheme
// cluster in s, relative to a base offset of 0. The result always starts
// with 0 and ends with len([]rune(s)); consecutive values are the
// half-open [start,end) bounds of one grapheme cluster.
func Boundaries(s string) []int {
	bounds := []int{0}
	chars := 0
	state := -1
	remaining := s
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		chars += runeCount(cluster)
		bounds = append(bounds, chars)
		remaining = rest
		state = newState
	}
	return bounds
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// NextBoundary returns the character offset of the grapheme-cluster
// boundary strictly after offset within s (s indexed in characters, i.e.
// runes). If offset is at or past the end, len([]rune(s)) is returned.
func NextBoundary(s string, offset int) int {
	bounds := Boundaries(s)
	for _, b := range bounds {
		if b > offset {
			return b
		}
	}
	if len(bounds) > 0 {
		return bounds[len(bounds)-1]
	}
	return offset
}

// PrevBoundary returns the character offset of the grapheme-cluster
// boundary strictly before offset within s. If offset is at or before the
// start, 0 is returned.
func PrevBoundary(s string, offset int) int {
	bounds := Boundaries(s)
	prev := 0
	for _, b := range bounds {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}

// IsBoundary reports whether offset falls exactly on a grapheme-cluster
// boundary within s.
func IsBoundary(s string, offset int) bool {
	for _, b := range Boundaries(s) {
		if b == offset {
			return true
		}
		if b > offset {
			break
		}
	}
	return false
}
