package command

import (
	"sort"
	"strings"

	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/delta"
	"github.com/dshills/edcore/internal/kernel"
)

// affectedRange computes the smallest character range covering every edit
// in edits, in post-edit coordinates, for the AffectedStart/End hint on a
// DocumentModified notification (spec §6's "affected_region?" is advisory,
// used by hosts to limit redraw/re-layout).
func affectedRange(edits []delta.TextEditDelta) (start, end int, has bool) {
	if len(edits) == 0 {
		return 0, 0, false
	}
	start = edits[0].RangeStart
	end = edits[0].NewRangeEnd()
	for _, e := range edits[1:] {
		if e.RangeStart < start {
			start = e.RangeStart
		}
		if ne := e.NewRangeEnd(); ne > end {
			end = ne
		}
	}
	return start, end, true
}

func documentEvents(d kernel.TextDelta) Events {
	start, end, has := affectedRange(d.Edits)
	return Events{
		Broadcast: []StateChange{{
			OldVersion: d.BeforeVersion, NewVersion: d.AfterVersion,
			ChangeType: DocumentModified, AffectedStart: start, AffectedEnd: end, HasAffected: has,
		}},
		Local: []StateChange{{ChangeType: SelectionChanged}},
		Edits: d.Edits,
	}
}

func toCursorEdits(edits []kernel.EditSpec) []cursor.Edit {
	out := make([]cursor.Edit, len(edits))
	for i, e := range edits {
		out[i] = cursor.Edit{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, InsertedText: e.InsertedText}
	}
	return out
}

// applyEditAndTransform is the shared multi-caret edit pipeline of spec
// §4.3 steps 1-9: it predicts the post-edit selection set by running the
// same transform the buffer will apply, hands both the pre- and
// predicted-post selection snapshots to kernel.Buffer.ApplyEdits (so an
// undo/redo later can restore either one), then adopts the predicted
// selections as the view's new selection set.
func applyEditAndTransform(v View, edits []kernel.EditSpec, forceNewGroup bool) (Events, error) {
	if len(edits) == 0 {
		return emptyEvents(), nil
	}
	merged := mergeEditSpecs(edits)

	descending := toCursorEdits(merged)
	cursor.SortEditsDescending(descending)

	sels := v.Selections()
	before := sels.Clone()
	predicted := sels.Clone()
	cursor.TransformSetMulti(predicted, descending)

	d, err := v.Buffer().ApplyEdits(merged, before, predicted, forceNewGroup)
	if err != nil {
		return Events{}, err
	}
	v.SetSelections(predicted)
	return documentEvents(d), nil
}

func execInsertText(v View, c InsertText) (Events, error) {
	sels := v.Selections()
	edits := make([]kernel.EditSpec, 0, sels.Count())
	for _, sel := range sels.All() {
		edits = append(edits, kernel.EditSpec{RangeStart: sel.Start(), RangeEnd: sel.End(), InsertedText: c.Text})
	}
	return applyEditAndTransform(v, edits, false)
}

func execDeleteBackward(v View, c DeleteBackward) (Events, error) {
	buf := v.Buffer()
	sels := v.Selections()
	var edits []kernel.EditSpec
	for _, sel := range sels.All() {
		var start, end int
		if !sel.IsEmpty() {
			start, end = sel.Start(), sel.End()
		} else {
			start = prevBoundary(buf, sel.Head, c.ByGrapheme)
			end = sel.Head
		}
		if start == end {
			continue
		}
		edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: end})
	}
	return applyEditAndTransform(v, edits, false)
}

func execDeleteForward(v View, c DeleteForward) (Events, error) {
	buf := v.Buffer()
	sels := v.Selections()
	var edits []kernel.EditSpec
	for _, sel := range sels.All() {
		var start, end int
		if !sel.IsEmpty() {
			start, end = sel.Start(), sel.End()
		} else {
			start = sel.Head
			end = nextBoundary(buf, sel.Head, c.ByGrapheme)
		}
		if start == end {
			continue
		}
		edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: end})
	}
	return applyEditAndTransform(v, edits, false)
}

func execReplaceRange(v View, c ReplaceRange) (Events, error) {
	edits := []kernel.EditSpec{{RangeStart: c.Start, RangeEnd: c.End, InsertedText: c.Text}}
	return applyEditAndTransform(v, edits, true)
}

// distinctLines returns the sorted, deduplicated set of logical lines any
// selection in sels touches.
func distinctLines(buf *kernel.Buffer, sels *cursor.Set) []int {
	seen := make(map[int]bool)
	var lines []int
	for _, sel := range sels.All() {
		startLine, _, _ := buf.CharToLineCol(sel.Start())
		endLine, endCol, _ := buf.CharToLineCol(sel.End())
		if endCol == 0 && endLine > startLine && !sel.IsEmpty() {
			endLine--
		}
		for l := startLine; l <= endLine; l++ {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	sort.Ints(lines)
	return lines
}

func execDuplicateLine(v View, c DuplicateLine) (Events, error) {
	buf := v.Buffer()
	lines := distinctLines(buf, v.Selections())
	edits := make([]kernel.EditSpec, 0, len(lines))
	for _, l := range lines {
		_, lineEnd, err := buf.LineCharRange(l)
		if err != nil {
			continue
		}
		text, err := buf.LineText(l)
		if err != nil {
			continue
		}
		edits = append(edits, kernel.EditSpec{RangeStart: lineEnd, RangeEnd: lineEnd, InsertedText: "\n" + text})
	}
	return applyEditAndTransform(v, edits, true)
}

// deleteLinesRange computes the character range spanning logical lines
// [startLine, endLine] plus exactly one adjoining newline, so the deletion
// leaves every other line intact (deleting the trailing newline when a
// following line exists, otherwise the preceding one).
func deleteLinesRange(buf *kernel.Buffer, startLine, endLine int) (int, int) {
	lineCount := buf.LineCount()
	start, _, _ := buf.LineCharRange(startLine)
	_, end, _ := buf.LineCharRange(endLine)
	if endLine < lineCount-1 {
		nextStart, _, _ := buf.LineCharRange(endLine + 1)
		return start, nextStart
	}
	if startLine > 0 {
		_, prevEnd, _ := buf.LineCharRange(startLine - 1)
		return prevEnd, end
	}
	return start, end
}

func execDeleteLine(v View, c DeleteLine) (Events, error) {
	buf := v.Buffer()
	lines := distinctLines(buf, v.Selections())
	var edits []kernel.EditSpec
	i := 0
	for i < len(lines) {
		j := i
		for j+1 < len(lines) && lines[j+1] == lines[j]+1 {
			j++
		}
		start, end := deleteLinesRange(buf, lines[i], lines[j])
		edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: end})
		i = j + 1
	}
	return applyEditAndTransform(v, edits, true)
}

func execJoinLines(v View, c JoinLines) (Events, error) {
	buf := v.Buffer()
	seen := make(map[int]bool)
	var edits []kernel.EditSpec
	for _, sel := range v.Selections().All() {
		line, _, _ := buf.CharToLineCol(sel.Head)
		if seen[line] || line >= buf.LineCount()-1 {
			continue
		}
		seen[line] = true
		_, lineEnd, _ := buf.LineCharRange(line)
		nextStart, nextEnd, _ := buf.LineCharRange(line + 1)
		nextText, err := buf.TextRange(nextStart, nextEnd)
		if err != nil {
			continue
		}
		ws := 0
		for _, r := range nextText {
			if r != ' ' && r != '\t' {
				break
			}
			ws++
		}
		edits = append(edits, kernel.EditSpec{RangeStart: lineEnd, RangeEnd: nextStart + ws, InsertedText: " "})
	}
	return applyEditAndTransform(v, edits, true)
}

func execIndentLines(v View, width int, indent bool) (Events, error) {
	buf := v.Buffer()
	lines := distinctLines(buf, v.Selections())
	var edits []kernel.EditSpec
	for _, l := range lines {
		lineStart, lineEnd, err := buf.LineCharRange(l)
		if err != nil {
			continue
		}
		if indent {
			edits = append(edits, kernel.EditSpec{RangeStart: lineStart, RangeEnd: lineStart, InsertedText: strings.Repeat(" ", width)})
			continue
		}
		text, err := buf.TextRange(lineStart, lineEnd)
		if err != nil {
			continue
		}
		n := 0
		for n < width && n < len(text) && (text[n] == ' ' || text[n] == '\t') {
			n++
		}
		if n > 0 {
			edits = append(edits, kernel.EditSpec{RangeStart: lineStart, RangeEnd: lineStart + n})
		}
	}
	return applyEditAndTransform(v, edits, true)
}

func execToggleLineComment(v View, c ToggleLineComment) (Events, error) {
	buf := v.Buffer()
	lines := distinctLines(buf, v.Selections())
	var edits []kernel.EditSpec
	prefixLen := len([]rune(c.Prefix))
	for _, l := range lines {
		lineStart, lineEnd, err := buf.LineCharRange(l)
		if err != nil {
			continue
		}
		text, err := buf.TextRange(lineStart, lineEnd)
		if err != nil {
			continue
		}
		runes := []rune(text)
		indent := 0
		for indent < len(runes) && (runes[indent] == ' ' || runes[indent] == '\t') {
			indent++
		}
		rest := string(runes[indent:])
		if strings.HasPrefix(rest, c.Prefix) {
			start := lineStart + indent
			edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: start + prefixLen})
		} else {
			start := lineStart + indent
			edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: start, InsertedText: c.Prefix})
		}
	}
	return applyEditAndTransform(v, edits, true)
}

func execDeleteToPrevTabStop(v View, c DeleteToPrevTabStop) (Events, error) {
	buf := v.Buffer()
	var edits []kernel.EditSpec
	for _, sel := range v.Selections().All() {
		if !sel.IsEmpty() {
			edits = append(edits, kernel.EditSpec{RangeStart: sel.Start(), RangeEnd: sel.End()})
			continue
		}
		line, col, _ := buf.CharToLineCol(sel.Head)
		if col == 0 {
			continue
		}
		lineStart, _, _ := buf.LineCharRange(line)
		text, err := buf.TextRange(lineStart, sel.Head)
		if err != nil || strings.Trim(text, " \t") != "" {
			start := prevBoundary(buf, sel.Head, false)
			if start != sel.Head {
				edits = append(edits, kernel.EditSpec{RangeStart: start, RangeEnd: sel.Head})
			}
			continue
		}
		width := c.Width
		if width <= 0 {
			width = 1
		}
		prevStop := ((col - 1) / width) * width
		edits = append(edits, kernel.EditSpec{RangeStart: lineStart + prevStop, RangeEnd: sel.Head})
	}
	return applyEditAndTransform(v, edits, false)
}

func execAutoIndentNewline(v View, c AutoIndentNewline) (Events, error) {
	buf := v.Buffer()
	var edits []kernel.EditSpec
	for _, sel := range v.Selections().All() {
		line, _, _ := buf.CharToLineCol(sel.Start())
		lineStart, lineEnd, _ := buf.LineCharRange(line)
		text, err := buf.TextRange(lineStart, lineEnd)
		if err != nil {
			continue
		}
		indent := 0
		for indent < len(text) && (text[indent] == ' ' || text[indent] == '\t') {
			indent++
		}
		edits = append(edits, kernel.EditSpec{
			RangeStart: sel.Start(), RangeEnd: sel.End(),
			InsertedText: "\n" + text[:indent],
		})
	}
	return applyEditAndTransform(v, edits, true)
}
