package layout

import "testing"

func TestNoWrapSingleRow(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4})
	l := e.Layout("hello")
	if l.RowCount != 1 {
		t.Fatalf("RowCount = %d, want 1", l.RowCount)
	}
	if l.Width != 5 {
		t.Fatalf("Width = %d, want 5", l.Width)
	}
}

func TestCharWrapBreaksAtViewportWidth(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4, ViewportW: 5, Mode: WrapChar})
	l := e.Layout("abcdefgh")
	if l.RowCount != 2 {
		t.Fatalf("RowCount = %d, want 2", l.RowCount)
	}
	start, end := l.RowCharRange(0)
	if start != 0 || end != 5 {
		t.Fatalf("row0 range = [%d,%d), want [0,5)", start, end)
	}
	start, end = l.RowCharRange(1)
	if start != 5 || end != 8 {
		t.Fatalf("row1 range = [%d,%d), want [5,8)", start, end)
	}
}

func TestWordWrapBreaksAtLastSpace(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4, ViewportW: 5, Mode: WrapWord})
	l := e.Layout("aa bbbbbbbb")
	start, end := l.RowCharRange(0)
	if start != 0 || end != 3 {
		t.Fatalf("row0 range = [%d,%d), want [0,3) (\"aa \")", start, end)
	}
}

func TestWordWrapFallsBackToCharWithNoBreak(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4, ViewportW: 5, Mode: WrapWord})
	l := e.Layout("abcdefgh")
	if l.RowCount != 2 {
		t.Fatalf("RowCount = %d, want 2 (no soft break available, falls back to char)", l.RowCount)
	}
	start, end := l.RowCharRange(0)
	if start != 0 || end != 5 {
		t.Fatalf("row0 range = [%d,%d), want [0,5)", start, end)
	}
}

func TestTabExpansion(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4})
	l := e.Layout("a\tb")
	if !l.HasTabs {
		t.Fatal("expected HasTabs")
	}
	// 'a' at col0 width1 -> col1; tab at col1 expands to 3 cells (4-1%4)
	// -> col4; 'b' at col4 width1 -> col5.
	if l.Width != 5 {
		t.Fatalf("Width = %d, want 5", l.Width)
	}
}

func TestLogicalToVisualAndBack(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4, ViewportW: 5, Mode: WrapChar})
	l := e.Layout("abcdefgh")
	row, x := l.LogicalToVisual(6)
	if row != 1 || x != 1 {
		t.Fatalf("LogicalToVisual(6) = (%d,%d), want (1,1)", row, x)
	}
	col := l.VisualToLogical(1, 1)
	if col != 6 {
		t.Fatalf("VisualToLogical(1,1) = %d, want 6", col)
	}
}

func TestVisualToLogicalSnapsPastEnd(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4})
	l := e.Layout("abc")
	col := l.VisualToLogical(0, 100)
	if col != 3 {
		t.Fatalf("VisualToLogical overshoot = %d, want 3 (sentinel end-of-line column)", col)
	}
}

func TestIndentFixedCellsAppliesToContinuationRows(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4, ViewportW: 5, Mode: WrapChar, Indent: IndentFixedCells, FixedIndent: 2})
	l := e.Layout("abcdefgh")
	if l.Segments[1].StartX != 2 {
		t.Fatalf("row1 StartX = %d, want 2", l.Segments[1].StartX)
	}
	_, x := l.LogicalToVisual(5)
	if x != 2 {
		t.Fatalf("first char of row1 x = %d, want 2", x)
	}
}

func TestWideCharacterWidth(t *testing.T) {
	e := NewEngine(Options{TabWidth: 4})
	l := e.Layout("a中 b")
	if !l.HasWide {
		t.Fatal("expected HasWide for CJK scalar value")
	}
	if l.Width != 5 {
		t.Fatalf("Width = %d, want 5 (1 + 2 + 1 + 1)", l.Width)
	}
}
