// Package storage implements the piece-table text store (spec §4.1): an
// immutable original byte buffer plus an append-only addition buffer,
// addressed by a vector of pieces. All public offsets are Unicode scalar
// value (character) offsets; pieces cache their character counts because
// splits happen at character boundaries.
package storage

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrOutOfRange is returned when a character offset lies outside
// [0, total_chars].
var ErrOutOfRange = errors.New("storage: offset out of range")

// ErrInvalidUTF8 is returned when text passed to a constructor is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("storage: invalid utf-8")

type bufferKind uint8

const (
	bufOriginal bufferKind = iota
	bufAdd
)

// piece is a record {buffer, byte_start, byte_len, char_count}.
type piece struct {
	kind      bufferKind
	byteStart int
	byteLen   int
	charCount int
}

func (p piece) byteEnd() int { return p.byteStart + p.byteLen }

// Table is the piece-table text store.
type Table struct {
	original string
	add      strings.Builder
	addText  string // materialized copy of add.String(), refreshed on write
	pieces   []piece
	chars    int
}

// New returns an empty Table.
func New() *Table {
	return &Table{}
}

// NewFromString builds a Table whose initial content is text. text must be
// valid UTF-8.
func NewFromString(text string) (*Table, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}
	t := &Table{original: text}
	if len(text) > 0 {
		t.pieces = []piece{{kind: bufOriginal, byteStart: 0, byteLen: len(text), charCount: utf8.RuneCountInString(text)}}
		t.chars = t.pieces[0].charCount
	}
	return t, nil
}

// Len returns the total character count.
func (t *Table) Len() int { return t.chars }

// bufferSlice returns the raw bytes backing a piece.
func (t *Table) bufferSlice(p piece) string {
	switch p.kind {
	case bufOriginal:
		return t.original[p.byteStart:p.byteEnd()]
	default:
		return t.addText[p.byteStart:p.byteEnd()]
	}
}

// GetTextRange streams the concatenation of piece slices covering
// [startChar, endChar) without materializing the whole document.
func (t *Table) GetTextRange(startChar, endChar int) (string, error) {
	if startChar < 0 || endChar > t.chars || startChar > endChar {
		return "", ErrOutOfRange
	}
	if startChar == endChar {
		return "", nil
	}
	var b strings.Builder
	b.Grow(endChar - startChar)
	pos := 0
	for _, p := range t.pieces {
		pEnd := pos + p.charCount
		if pEnd <= startChar {
			pos = pEnd
			continue
		}
		if pos >= endChar {
			break
		}
		slice := t.bufferSlice(p)
		localStart := 0
		if startChar > pos {
			localStart = charToByte(slice, startChar-pos)
		}
		localEnd := p.byteLen
		if endChar < pEnd {
			localEnd = charToByte(slice, endChar-pos)
		}
		b.WriteString(slice[localStart:localEnd])
		pos = pEnd
	}
	return b.String(), nil
}

// Text returns the full document text. Prefer GetTextRange for partial
// reads on large documents.
func (t *Table) Text() string {
	s, _ := t.GetTextRange(0, t.chars)
	return s
}

// charToByte returns the byte offset within s corresponding to character
// offset n (0 <= n <= rune count of s).
func charToByte(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for b := range s {
		if i == n {
			return b
		}
		i++
	}
	return len(s)
}

// locate finds the piece index and in-piece character offset containing
// charOffset. If charOffset equals the total character count, it returns
// (len(pieces), 0) signaling "append at end".
func (t *Table) locate(charOffset int) (idx, within int) {
	pos := 0
	for i, p := range t.pieces {
		if charOffset < pos+p.charCount {
			return i, charOffset - pos
		}
		pos += p.charCount
	}
	return len(t.pieces), 0
}

// Insert inserts text at charOffset.
func (t *Table) Insert(charOffset int, text string) error {
	if charOffset < 0 || charOffset > t.chars {
		return ErrOutOfRange
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if text == "" {
		return nil
	}
	addByteStart := t.add.Len()
	t.add.WriteString(text)
	t.addText = t.add.String()
	newPiece := piece{kind: bufAdd, byteStart: addByteStart, byteLen: len(text), charCount: utf8.RuneCountInString(text)}

	idx, within := t.locate(charOffset)

	switch {
	case idx == len(t.pieces):
		t.pieces = t.mergeAppend(t.pieces, newPiece)
	case within == 0:
		t.pieces = t.insertAt(idx, newPiece)
	default:
		// Split the piece at `within` characters.
		p := t.pieces[idx]
		slice := t.bufferSlice(p)
		splitByte := charToByte(slice, within)
		left := piece{kind: p.kind, byteStart: p.byteStart, byteLen: splitByte, charCount: within}
		right := piece{kind: p.kind, byteStart: p.byteStart + splitByte, byteLen: p.byteLen - splitByte, charCount: p.charCount - within}
		replacement := make([]piece, 0, len(t.pieces)+2)
		replacement = append(replacement, t.pieces[:idx]...)
		replacement = append(replacement, left)
		replacement = t.mergeAppend(replacement, newPiece)
		replacement = append(replacement, right)
		replacement = append(replacement, t.pieces[idx+1:]...)
		t.pieces = replacement
	}
	t.chars += newPiece.charCount
	return nil
}

// insertAt inserts p before index idx in pieces, merging with the
// preceding Add piece if adjacent.
func (t *Table) insertAt(idx int, p piece) []piece {
	if idx > 0 {
		merged := make([]piece, 0, len(t.pieces)+1)
		merged = append(merged, t.pieces[:idx]...)
		merged = t.mergeAppend(merged, p)
		merged = append(merged, t.pieces[idx:]...)
		return merged
	}
	out := make([]piece, 0, len(t.pieces)+1)
	out = append(out, p)
	out = append(out, t.pieces...)
	return out
}

// mergeAppend appends p to pieces, merging it into the last element when
// both are Add pieces and byte-adjacent.
func (t *Table) mergeAppend(pieces []piece, p piece) []piece {
	if n := len(pieces); n > 0 {
		last := pieces[n-1]
		if last.kind == bufAdd && p.kind == bufAdd && last.byteEnd() == p.byteStart {
			pieces[n-1] = piece{kind: bufAdd, byteStart: last.byteStart, byteLen: last.byteLen + p.byteLen, charCount: last.charCount + p.charCount}
			return pieces
		}
	}
	return append(pieces, p)
}

// Delete removes [startChar, endChar).
func (t *Table) Delete(startChar, endChar int) error {
	if startChar < 0 || endChar > t.chars || startChar > endChar {
		return ErrOutOfRange
	}
	if startChar == endChar {
		return nil
	}
	var out []piece
	pos := 0
	removed := 0
	for _, p := range t.pieces {
		pEnd := pos + p.charCount
		switch {
		case pEnd <= startChar || pos >= endChar:
			out = append(out, p)
		case pos >= startChar && pEnd <= endChar:
			// Entirely removed.
			removed += p.charCount
		default:
			slice := t.bufferSlice(p)
			// Keep the portion(s) outside [startChar, endChar).
			if pos < startChar {
				keepChars := startChar - pos
				b := charToByte(slice, keepChars)
				out = append(out, piece{kind: p.kind, byteStart: p.byteStart, byteLen: b, charCount: keepChars})
				removed += min(pEnd, endChar) - startChar
			}
			if pEnd > endChar {
				keepFrom := endChar - pos
				b := charToByte(slice, keepFrom)
				out = append(out, piece{kind: p.kind, byteStart: p.byteStart + b, byteLen: p.byteLen - b, charCount: pEnd - endChar})
				if pos >= startChar {
					removed += endChar - pos
				}
			}
		}
		pos = pEnd
	}
	t.pieces = out
	t.chars -= removed
	return nil
}

// Replace deletes [startChar, endChar) and inserts text at startChar.
func (t *Table) Replace(startChar, endChar int, text string) error {
	if err := t.Delete(startChar, endChar); err != nil {
		return err
	}
	return t.Insert(startChar, text)
}

// Compact rewrites pieces against a fresh Add buffer containing only live
// bytes, reclaiming space from deleted Add-buffer regions.
func (t *Table) Compact() {
	var fresh strings.Builder
	newPieces := make([]piece, len(t.pieces))
	for i, p := range t.pieces {
		slice := t.bufferSlice(p)
		start := fresh.Len()
		fresh.WriteString(slice)
		newPieces[i] = piece{kind: bufAdd, byteStart: start, byteLen: len(slice), charCount: p.charCount}
	}
	t.original = ""
	t.add.Reset()
	t.add.WriteString(fresh.String())
	t.addText = t.add.String()
	t.pieces = newPieces
}
