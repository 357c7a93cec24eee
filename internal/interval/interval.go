// Package interval implements the sorted, range-queryable interval tree
// described in spec §3/§4.2: a vector sorted by start plus a parallel
// prefix_max_end for pruning, with the edit-shift rule applied on any text
// change.
package interval

import "sort"

// Interval is {start_char, end_char, payload} with half-open range
// [start, end).
type Interval struct {
	Start, End int
	Payload    any
}

// Tree is a vector of Intervals sorted by Start, with a parallel
// prefix_max_end used to prune range queries.
type Tree struct {
	items        []Interval
	prefixMaxEnd []int
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of intervals stored.
func (t *Tree) Len() int { return len(t.items) }

// Insert adds an interval, maintaining the start-sorted invariant.
func (t *Tree) Insert(start, end int, payload any) {
	iv := Interval{Start: start, End: end, Payload: payload}
	i := sort.Search(len(t.items), func(i int) bool { return t.items[i].Start > start })
	t.items = append(t.items, Interval{})
	copy(t.items[i+1:], t.items[i:])
	t.items[i] = iv
	t.rebuildPrefix()
}

// All returns every interval, in start order.
func (t *Tree) All() []Interval {
	out := make([]Interval, len(t.items))
	copy(out, t.items)
	return out
}

// Clear removes every interval.
func (t *Tree) Clear() {
	t.items = nil
	t.prefixMaxEnd = nil
}

// Replace discards all intervals and installs a fresh set (used when a
// processor replaces an entire layer). Intervals need not be pre-sorted.
func (t *Tree) Replace(items []Interval) {
	cp := make([]Interval, len(items))
	copy(cp, items)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Start < cp[j].Start })
	t.items = cp
	t.rebuildPrefix()
}

func (t *Tree) rebuildPrefix() {
	t.prefixMaxEnd = make([]int, len(t.items))
	running := 0
	for i, iv := range t.items {
		if iv.End > running {
			running = iv.End
		}
		t.prefixMaxEnd[i] = running
	}
}

// PointQuery returns every interval covering offset.
func (t *Tree) PointQuery(offset int) []Interval {
	return t.RangeQuery(offset, offset+1)
}

// RangeQuery returns every interval overlapping [start, end), pruning via
// prefix_max_end.
func (t *Tree) RangeQuery(start, end int) []Interval {
	var out []Interval
	// First index whose Start could possibly overlap: any interval with
	// Start < end is a candidate; intervals are sorted by Start so we can
	// stop once Start >= end.
	for i, iv := range t.items {
		if iv.Start >= end {
			break
		}
		// Pruning: if the running max end up to i is <= start, nothing up
		// to and including i overlaps [start,end).
		if t.prefixMaxEnd[i] <= start {
			continue
		}
		if iv.End > start && iv.Start < end {
			out = append(out, iv)
		}
	}
	return out
}

// ApplyEdit shifts every interval per the rule in spec §4.2 for an edit of
// (rangeStart, rangeEnd) replaced by text of insertedLen characters.
// Intervals whose [a,b) are entirely consumed by the edit are dropped.
// A zero-width interval exactly at a pure insertion point (a == b ==
// rangeStart == rangeEnd) stays pinned before the inserted text;
// ApplyEditSticky, which style layers use, extends it over the inserted
// run instead.
func (t *Tree) ApplyEdit(rangeStart, rangeEnd, insertedLen int) {
	delta := insertedLen - (rangeEnd - rangeStart)
	out := t.items[:0:0]
	for _, iv := range t.items {
		a, b := iv.Start, iv.End
		switch {
		case b <= rangeStart:
			// unchanged
		case a >= rangeEnd:
			a += delta
			b += delta
		default:
			// overlap
			newA := a
			if rangeStart < newA {
				newA = rangeStart
			}
			var newB int
			if b <= rangeEnd {
				newB = rangeStart
			} else {
				newB = b + delta
			}
			if newA >= newB {
				continue // dropped
			}
			a, b = newA, newB
		}
		out = append(out, Interval{Start: a, End: b, Payload: iv.Payload})
	}
	t.items = out
	t.rebuildPrefix()
}

// ApplyEditSticky behaves like ApplyEdit but additionally implements the
// tie-break rule: a zero-width interval sitting exactly at a pure
// insertion point (Start == End == rangeStart == rangeEnd) is extended to
// the right to span the inserted text, rather than being shifted past it
// by the generic rule.
func (t *Tree) ApplyEditSticky(rangeStart, rangeEnd, insertedLen int) {
	if rangeStart != rangeEnd || insertedLen == 0 {
		t.ApplyEdit(rangeStart, rangeEnd, insertedLen)
		return
	}
	delta := insertedLen
	out := t.items[:0:0]
	for _, iv := range t.items {
		a, b := iv.Start, iv.End
		switch {
		case a == rangeStart && b == rangeStart:
			b = rangeStart + insertedLen
		case b <= rangeStart:
			// unchanged
		case a >= rangeEnd:
			a += delta
			b += delta
		default:
			newA := a
			if rangeStart < newA {
				newA = rangeStart
			}
			var newB int
			if b <= rangeEnd {
				newB = rangeStart
			} else {
				newB = b + delta
			}
			if newA >= newB {
				continue
			}
			a, b = newA, newB
		}
		out = append(out, Interval{Start: a, End: b, Payload: iv.Payload})
	}
	t.items = out
	t.rebuildPrefix()
}
