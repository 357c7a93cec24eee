package kernel_test

import (
	"testing"

	"github.com/dshills/edcore/internal/command"
	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/folds"
	"github.com/dshills/edcore/internal/interval"
	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/layout"
	"github.com/dshills/edcore/internal/styles"
	"github.com/dshills/edcore/internal/workspace"
)

// Scenario 1: soft-wrap round-trip.
func TestScenarioSoftWrapRoundTrip(t *testing.T) {
	buf, err := kernel.NewFromString("abcdefghij")
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)
	v, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	v.SetViewportWidth(4)
	v.SetWrapMode(layout.WrapChar)

	char := v.VisualToLogical(1, 0)
	line, col, err := buf.CharToLineCol(char)
	if err != nil {
		t.Fatal(err)
	}
	if line != 0 || col != 4 {
		t.Fatalf("visual_to_logical(1,0) = (%d,%d), want (0,4)", line, col)
	}

	if _, err := ws.Execute(v.ID(), command.ReplaceRange{Start: 0, End: 0, Text: "X"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "Xabcdefghij" {
		t.Fatalf("text = %q, want %q", got, "Xabcdefghij")
	}

	row, x := v.LogicalToVisual(5)
	if row != 1 || x != 1 {
		t.Fatalf("logical_to_visual(0,5) = (%d,%d), want (1,1)", row, x)
	}
}

// Scenario 2: multi-caret insert with descending-order edits and exact
// undo restoration.
func TestScenarioMultiCaretInsert(t *testing.T) {
	original := "foo\nfoo\nfoo\n"
	buf, err := kernel.NewFromString(original)
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)
	v, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	v.SetSelections(threeCursorsAt(3, 7, 11))

	events, err := ws.Execute(v.ID(), command.InsertText{Text: "!"})
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "foo!\nfoo!\nfoo!\n" {
		t.Fatalf("text = %q, want %q", got, "foo!\nfoo!\nfoo!\n")
	}

	if len(events.Broadcast) == 0 {
		t.Fatal("expected a broadcast DocumentModified event")
	}

	if !buf.CanUndo() {
		t.Fatal("expected an undo group")
	}
	if _, err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != original {
		t.Fatalf("after undo text = %q, want %q", got, original)
	}
}

// Scenario 3: interval shift under deletion, then re-insertion without
// undo produces the right-extension-at-start shape.
func TestScenarioIntervalShift(t *testing.T) {
	buf, err := kernel.NewFromString("hello world")
	if err != nil {
		t.Fatal(err)
	}
	buf.Styles.ReplaceLayer(styles.LayerBase, []interval.Interval{{Start: 2, End: 7, Payload: styles.StyleID(1)}})

	if _, err := buf.ApplyEdits([]kernel.EditSpec{{RangeStart: 0, RangeEnd: 3}}, nil, nil, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "lo world" {
		t.Fatalf("text = %q, want %q", got, "lo world")
	}
	if start, end := findSpan(t, buf); start != 0 || end != 4 {
		t.Fatalf("interval after delete = [%d,%d), want [0,4)", start, end)
	}

	if _, err := buf.ApplyEdits([]kernel.EditSpec{{RangeStart: 0, RangeEnd: 0, InsertedText: "hel"}}, nil, nil, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "hello world" {
		t.Fatalf("text = %q, want %q", got, "hello world")
	}
	if start, end := findSpan(t, buf); start != 3 || end != 7 {
		t.Fatalf("interval after fresh re-insert = [%d,%d), want [3,7)", start, end)
	}
}

func findSpan(t *testing.T, buf *kernel.Buffer) (int, int) {
	t.Helper()
	spans := buf.Styles.SpansInRange(0, buf.CharCount())
	if len(spans) != 1 {
		t.Fatalf("expected exactly one style span, got %d", len(spans))
	}
	return spans[0].Start, spans[0].End
}

// Scenario 4: user fold shifting across an insert then an interior
// delete, and dropping when fully consumed.
func TestScenarioUserFoldShifting(t *testing.T) {
	text := "L0\nL1\nL2\nL3\nL4\nL5\nL6\nL7\nL8\nL9\n"
	buf, err := kernel.NewFromString(text)
	if err != nil {
		t.Fatal(err)
	}
	buf.Folds.AddUserFold(2, 5, true, "...")

	_, l0LineEnd, err := buf.LineCharRange(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buf.ApplyEdits([]kernel.EditSpec{{RangeStart: l0LineEnd, RangeEnd: l0LineEnd, InsertedText: "\n"}}, nil, nil, true); err != nil {
		t.Fatal(err)
	}

	want := foldAt(t, buf, 3)
	if want.StartLine != 3 || want.EndLine != 6 {
		t.Fatalf("fold after insert = {%d,%d}, want {3,6}", want.StartLine, want.EndLine)
	}

	// After the insert, line index 5 holds L4's original content (line
	// mapping shifted by the new blank line at index 1).
	l4Start, l4End, err := buf.LineCharRange(5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buf.ApplyEdits([]kernel.EditSpec{{RangeStart: l4Start, RangeEnd: l4End + 1}}, nil, nil, true); err != nil {
		t.Fatal(err)
	}

	want = foldAt(t, buf, 3)
	if want.StartLine != 3 || want.EndLine != 5 {
		t.Fatalf("fold after interior delete = {%d,%d}, want {3,5}", want.StartLine, want.EndLine)
	}

	buf.Folds.ApplyLineEdit(3, 5, -3)
	for _, r := range buf.Folds.UserFolds() {
		if r.StartLine == 3 {
			t.Fatalf("fold should have been dropped once fully consumed, found %+v", r)
		}
	}
}

func foldAt(t *testing.T, buf *kernel.Buffer, start int) folds.Region {
	t.Helper()
	for _, r := range buf.Folds.UserFolds() {
		if r.StartLine == start {
			return r
		}
	}
	t.Fatalf("no user fold starting at line %d", start)
	return folds.Region{}
}

// Scenario 5: two views of one buffer disagree on total_visual after the
// same edit, per their own wrap width.
func TestScenarioTwoViewConsistency(t *testing.T) {
	buf, err := kernel.NewFromString("0123456789\n")
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)

	a, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	a.SetViewportWidth(10)
	a.SetWrapMode(layout.WrapChar)

	b, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	b.SetViewportWidth(5)
	b.SetWrapMode(layout.WrapChar)

	a.SetSelections(oneCursorAt(1))
	if _, err := ws.Execute(a.ID(), command.InsertText{Text: "X"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "0X123456789\n" {
		t.Fatalf("text = %q, want %q", got, "0X123456789\n")
	}

	if got := totalVisualRows(a); got != 2 {
		t.Fatalf("view A total_visual = %d, want 2", got)
	}
	if got := totalVisualRows(b); got != 3 {
		t.Fatalf("view B total_visual = %d, want 3", got)
	}
}

// totalVisualRows sums wrap-row counts over every logical line that holds
// content; the scenario's own arithmetic (2 and 3 rows for an 11/12-char
// line at widths 10 and 5) counts only the wrapped content line, not the
// always-present empty line a trailing newline appends.
func totalVisualRows(v *workspace.View) int {
	n := v.LineCount()
	rows := 0
	for i := 0; i < n; i++ {
		start, end, err := v.Buffer().LineCharRange(i)
		if err != nil || (start == end && i == n-1 && n > 1) {
			continue
		}
		rows += v.Layout(i).RowCount
	}
	return rows
}

// Scenario 6: sequential typing coalesces into one undo group; a cursor
// jump between edits closes the group early.
func TestScenarioUndoCoalescing(t *testing.T) {
	buf, err := kernel.NewFromString("")
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)
	v, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}

	for _, ch := range []string{"h", "i", "!"} {
		v.SetSelections(oneCursorAt(lastOffset(buf)))
		if _, err := ws.Execute(v.ID(), command.InsertText{Text: ch}); err != nil {
			t.Fatal(err)
		}
	}
	if got := buf.Text(); got != "hi!" {
		t.Fatalf("text = %q, want %q", got, "hi!")
	}
	if _, err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "" {
		t.Fatalf("after one undo text = %q, want empty", got)
	}

	v.SetSelections(oneCursorAt(0))
	if _, err := ws.Execute(v.ID(), command.InsertText{Text: "h"}); err != nil {
		t.Fatal(err)
	}
	buf.NotifyCursorJump()
	v.SetSelections(oneCursorAt(0))
	if _, err := ws.Execute(v.ID(), command.InsertText{Text: "!"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "!h" {
		t.Fatalf("text = %q, want %q", got, "!h")
	}
	if _, err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "h" {
		t.Fatalf("after cursor-jump-split undo text = %q, want %q", got, "h")
	}
}

// Scenario 5b: a sibling view's selections shift too, not just the
// originating view's — spec §4.7 step 3's "Each view also shifts its own
// selections per §4.2" applies to every view of the buffer, not only the
// one a command was executed against.
func TestScenarioSiblingViewSelectionShift(t *testing.T) {
	buf, err := kernel.NewFromString("0123456789\n")
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)

	a, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}
	b.SetSelections(oneCursorAt(10))

	a.SetSelections(oneCursorAt(0))
	if _, err := ws.Execute(a.ID(), command.InsertText{Text: "XYZ"}); err != nil {
		t.Fatal(err)
	}

	if got := b.Selections().Primary().Head; got != 13 {
		t.Fatalf("sibling view head = %d, want 13 after a 3-char insert before it", got)
	}
}

// TestMoveCommandBreaksCoalescing drives the real command path (not a
// manual NotifyCursorJump call) to confirm that moving the caret away and
// back to an adjacent offset, then typing, does not wrongly coalesce with
// a preceding insert: MoveHorizontal must itself signal the jump.
func TestMoveCommandBreaksCoalescing(t *testing.T) {
	buf, err := kernel.NewFromString("")
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New()
	bufID := ws.OpenBuffer(buf)
	v, err := ws.NewView(bufID)
	if err != nil {
		t.Fatal(err)
	}

	v.SetSelections(oneCursorAt(0))
	if _, err := ws.Execute(v.ID(), command.InsertText{Text: "h"}); err != nil {
		t.Fatal(err)
	}
	// Move left then right: the caret lands back at the same adjacent
	// offset the next insert would need to coalesce under the pure
	// offset-adjacency check.
	if _, err := ws.Execute(v.ID(), command.MoveHorizontal{Delta: -1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ws.Execute(v.ID(), command.MoveHorizontal{Delta: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ws.Execute(v.ID(), command.InsertText{Text: "i"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "hi" {
		t.Fatalf("text = %q, want %q", got, "hi")
	}

	if _, err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "h" {
		t.Fatalf("after undo text = %q, want %q (the move commands should have closed the group)", got, "h")
	}
}

func lastOffset(buf *kernel.Buffer) int { return buf.CharCount() }

func oneCursorAt(offset int) *cursor.Set {
	return cursor.NewSetAt(offset)
}

func threeCursorsAt(a, b, c int) *cursor.Set {
	return cursor.NewSetFrom([]cursor.Selection{
		cursor.NewCursor(a),
		cursor.NewCursor(b),
		cursor.NewCursor(c),
	})
}
