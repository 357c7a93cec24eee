package command

import (
	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/kernel"
)

func clampOffset(o, max int) int {
	if o < 0 {
		return 0
	}
	if o > max {
		return max
	}
	return o
}

// stepOffset advances offset by one unit in the given direction, per the
// motion Unit requested (spec §4.2 "cursor motion units").
func stepOffset(buf *kernel.Buffer, offset int, forward bool, unit MotionUnit) int {
	switch unit {
	case UnitWord:
		if forward {
			return nextWordBoundary(buf, offset)
		}
		return prevWordBoundary(buf, offset)
	case UnitGrapheme:
		if forward {
			return nextBoundary(buf, offset, true)
		}
		return prevBoundary(buf, offset, true)
	default:
		if forward {
			return nextBoundary(buf, offset, false)
		}
		return prevBoundary(buf, offset, false)
	}
}

func moveOffset(buf *kernel.Buffer, offset, delta int, unit MotionUnit) int {
	o := offset
	if delta > 0 {
		for i := 0; i < delta; i++ {
			o = stepOffset(buf, o, true, unit)
		}
	} else {
		for i := 0; i < -delta; i++ {
			o = stepOffset(buf, o, false, unit)
		}
	}
	return o
}

func localSelectionEvent() Events {
	return Events{Local: []StateChange{{ChangeType: SelectionChanged}}}
}

func execMoveHorizontal(v View, c MoveHorizontal) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	max := buf.CharCount()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		if !c.Extend && !sel.IsEmpty() {
			if c.Delta < 0 {
				sel.Head = sel.Start()
			} else {
				sel.Head = sel.End()
			}
			sel = sel.Collapse()
			sel.StickyXCell = -1
			return sel
		}
		newHead := clampOffset(moveOffset(buf, sel.Head, c.Delta, c.Unit), max)
		if c.Extend {
			sel.Head = newHead
		} else {
			sel.Anchor = newHead
			sel.Head = newHead
		}
		sel.StickyXCell = -1
		return sel
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execMoveVertical(v View, c MoveVertical) (Events, error) {
	v.Buffer().NotifyCursorJump()
	sels := v.Selections()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		row, x := v.LogicalToVisual(sel.Head)
		targetX := x
		if sel.StickyXCell >= 0 {
			targetX = sel.StickyXCell
		}
		targetRow := row + c.Delta
		if targetRow < 0 {
			targetRow = 0
		}
		newHead := v.VisualToLogical(targetRow, targetX)
		sel.StickyXCell = targetX
		if c.Extend {
			sel.Head = newHead
		} else {
			sel.Anchor = newHead
			sel.Head = newHead
		}
		return sel
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execMoveLineBoundary(v View, c MoveLineBoundary) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		line, _, err := buf.CharToLineCol(sel.Head)
		if err != nil {
			return sel
		}
		start, end, _ := buf.LineCharRange(line)
		target := end
		if c.ToStart {
			target = start
		}
		if c.Extend {
			sel.Head = target
		} else {
			sel.Anchor = target
			sel.Head = target
		}
		sel.StickyXCell = -1
		return sel
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execSelectTo(v View, c SelectTo) (Events, error) {
	v.Buffer().NotifyCursorJump()
	sels := v.Selections()
	primary := sels.Primary()
	offset := clampOffset(c.Offset, v.Buffer().CharCount())
	if c.Extend {
		primary.Head = offset
	} else {
		primary.Anchor = offset
		primary.Head = offset
	}
	primary.StickyXCell = -1
	sels.SetPrimary(primary)
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execAddCursorVertical(v View, c AddCursorVertical) (Events, error) {
	v.Buffer().NotifyCursorJump()
	sels := v.Selections()
	primary := sels.Primary()
	row, x := v.LogicalToVisual(primary.Head)
	targetX := x
	if primary.StickyXCell >= 0 {
		targetX = primary.StickyXCell
	}
	targetRow := row + c.Delta
	if targetRow < 0 {
		targetRow = 0
	}
	newOffset := v.VisualToLogical(targetRow, targetX)
	newSel := cursor.NewCursor(newOffset)
	newSel.StickyXCell = targetX
	sels.Add(newSel)
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

// findRunes returns the rune index of the next occurrence of needle in
// haystack at or after from, wrapping around to the start of haystack if
// none is found past from; ok is false only if needle never occurs.
func findRunes(haystack, needle []rune, from int) (idx int, ok bool) {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0, false
	}
	search := func(lo, hi int) (int, bool) {
		for i := lo; i+len(needle) <= hi; i++ {
			match := true
			for j := range needle {
				if haystack[i+j] != needle[j] {
					match = false
					break
				}
			}
			if match {
				return i, true
			}
		}
		return 0, false
	}
	if i, ok := search(from, len(haystack)); ok {
		return i, true
	}
	return search(0, from)
}

func execAddNextOccurrence(v View, c AddNextOccurrence) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	primary := sels.Primary()

	if primary.IsEmpty() {
		start, end := wordRangeAt(buf, primary.Head)
		if start == end {
			return emptyEvents(), nil
		}
		primary.Anchor, primary.Head = start, end
		sels.SetPrimary(primary)
		v.SetSelections(sels)
		return localSelectionEvent(), nil
	}

	runes := []rune(buf.Text())
	needle := runes[primary.Start():primary.End()]
	idx, ok := findRunes(runes, needle, primary.End())
	if !ok {
		return emptyEvents(), nil
	}
	sels.Add(cursor.NewRange(idx, idx+len(needle)))
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execAddAllOccurrences(v View, c AddAllOccurrences) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	primary := sels.Primary()

	var needle []rune
	runes := []rune(buf.Text())
	if primary.IsEmpty() {
		start, end := wordRangeAt(buf, primary.Head)
		if start == end {
			return emptyEvents(), nil
		}
		needle = runes[start:end]
	} else {
		needle = runes[primary.Start():primary.End()]
	}
	if len(needle) == 0 {
		return emptyEvents(), nil
	}

	var all []cursor.Selection
	pos := 0
	for {
		idx, ok := findRunes(runes, needle, pos)
		if !ok || (len(all) > 0 && idx < pos) {
			break
		}
		all = append(all, cursor.NewRange(idx, idx+len(needle)))
		pos = idx + len(needle)
		if pos >= len(runes) {
			break
		}
	}
	if len(all) == 0 {
		return emptyEvents(), nil
	}
	sels.SetAll(all)
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execSelectLine(v View, c SelectLine) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		line, _, err := buf.CharToLineCol(sel.Head)
		if err != nil {
			return sel
		}
		start, end, _ := buf.LineCharRange(line)
		if line < buf.LineCount()-1 {
			nextStart, _, _ := buf.LineCharRange(line + 1)
			end = nextStart
		}
		return cursor.NewRange(start, end)
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execSelectWord(v View, c SelectWord) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		start, end := wordRangeAt(buf, sel.Head)
		return cursor.NewRange(start, end)
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}

func execExpandSelection(v View, c ExpandSelection) (Events, error) {
	buf := v.Buffer()
	buf.NotifyCursorJump()
	sels := v.Selections()
	sels.Map(func(sel cursor.Selection) cursor.Selection {
		wstart, wend := wordRangeAt(buf, sel.Head)
		if sel.IsEmpty() || sel.Start() > wstart || sel.End() < wend {
			return cursor.NewRange(wstart, wend)
		}

		line, _, err := buf.CharToLineCol(sel.Head)
		if err != nil {
			return sel
		}
		lstart, lend, _ := buf.LineCharRange(line)
		if line < buf.LineCount()-1 {
			nextStart, _, _ := buf.LineCharRange(line + 1)
			lend = nextStart
		}
		if sel.Start() > lstart || sel.End() < lend {
			return cursor.NewRange(lstart, lend)
		}

		return cursor.NewRange(0, buf.CharCount())
	})
	v.SetSelections(sels)
	return localSelectionEvent(), nil
}
