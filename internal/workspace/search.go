package workspace

import (
	"regexp"
	"unicode/utf8"

	"github.com/dshills/edcore/internal/kernel"
)

// Match is one regular-expression hit against an open buffer, reported as
// character offsets (not bytes) to stay consistent with every other
// coordinate this module hands out.
type Match struct {
	BufferID   kernel.BufferID
	RangeStart int
	RangeEnd   int
}

// SearchAllOpenBuffers finds every match of pattern across every open
// buffer ([EXPANSION] supplemental feature: spec.md's single-buffer
// command set has no multi-buffer search primitive, but a workspace that
// aggregates buffers needs one). There is no regular-expression library
// anywhere in the example pack to ground this on, so it is built directly
// on the standard library's regexp.
func (w *Workspace) SearchAllOpenBuffers(pattern string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &kernel.Error{Kind: kernel.RegexInvalid, Message: "invalid search pattern", Err: err}
	}

	var out []Match
	for _, id := range w.Buffers() {
		buf := w.Buffer(id)
		if buf == nil {
			continue
		}
		text := buf.Text()
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start := utf8.RuneCountInString(text[:loc[0]])
			end := start + utf8.RuneCountInString(text[loc[0]:loc[1]])
			out = append(out, Match{BufferID: id, RangeStart: start, RangeEnd: end})
		}
	}
	return out, nil
}
