package layout

// RowIndex is a Fenwick tree (binary indexed tree) over "visible visual
// rows per logical line", giving O(log N) prefix-sum queries so a visual
// row number can be mapped back to its owning logical line without
// rescanning every line's layout. It is invalidated (via Set) whenever a
// logical line's wrap layout changes, wrap mode/indent/width/tab-width
// changes, or folds change, per spec §4.5.
type RowIndex struct {
	tree []int // 1-indexed Fenwick tree
	rows []int // rows[i] = current visible row count of logical line i (0 if folded away)
}

// NewRowIndex builds a RowIndex for n logical lines, all initially
// contributing 0 visible rows (callers populate with Set before querying).
func NewRowIndex(n int) *RowIndex {
	return &RowIndex{tree: make([]int, n+1), rows: make([]int, n)}
}

// Len returns the number of logical lines tracked.
func (ri *RowIndex) Len() int { return len(ri.rows) }

// Set updates the visible row count of logical line i (0 if the line is
// hidden inside a collapsed fold) and fixes up the Fenwick tree.
func (ri *RowIndex) Set(i, rows int) {
	if i < 0 || i >= len(ri.rows) {
		return
	}
	delta := rows - ri.rows[i]
	if delta == 0 {
		return
	}
	ri.rows[i] = rows
	for j := i + 1; j <= len(ri.rows); j += j & (-j) {
		ri.tree[j] += delta
	}
}

// Insert grows the index by one logical line at position i with the given
// initial row count, shifting later lines up by one slot. This rebuilds
// the tree (O(N)); callers invalidate/rebuild in batches around structural
// edits rather than calling Insert per character.
func (ri *RowIndex) Insert(i, rows int) {
	if i < 0 || i > len(ri.rows) {
		i = len(ri.rows)
	}
	ri.rows = append(ri.rows, 0)
	copy(ri.rows[i+1:], ri.rows[i:])
	ri.rows[i] = rows
	ri.rebuild()
}

// Remove deletes the row count entry for logical line i.
func (ri *RowIndex) Remove(i int) {
	if i < 0 || i >= len(ri.rows) {
		return
	}
	ri.rows = append(ri.rows[:i], ri.rows[i+1:]...)
	ri.rebuild()
}

func (ri *RowIndex) rebuild() {
	n := len(ri.rows)
	ri.tree = make([]int, n+1)
	for i := 0; i < n; i++ {
		v := ri.rows[i]
		ri.rows[i] = 0
		ri.Set(i, v)
	}
}

// PrefixRows returns the total visible row count of logical lines
// [0, i).
func (ri *RowIndex) PrefixRows(i int) int {
	if i <= 0 {
		return 0
	}
	if i > len(ri.rows) {
		i = len(ri.rows)
	}
	sum := 0
	for j := i; j > 0; j -= j & (-j) {
		sum += ri.tree[j]
	}
	return sum
}

// TotalRows returns the total visible row count across every logical
// line.
func (ri *RowIndex) TotalRows() int { return ri.PrefixRows(len(ri.rows)) }

// LineForRow returns the logical line index containing visual row
// (0-indexed), plus the row's offset within that line's own segments, via
// binary search over Fenwick prefix sums.
func (ri *RowIndex) LineForRow(visualRow int) (line, rowInLine int) {
	n := len(ri.rows)
	if n == 0 {
		return 0, 0
	}
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if ri.PrefixRows(mid+1) <= visualRow {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, visualRow - ri.PrefixRows(lo)
}
