package lineindex

import "testing"

func TestNewFromString(t *testing.T) {
	idx := NewFromString("foo\nbar\nbaz")
	if idx.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", idx.LineCount())
	}
	s, e, err := idx.LineCharRange(1)
	if err != nil || s != 4 || e != 7 {
		t.Fatalf("LineCharRange(1) = (%d,%d,%v), want (4,7,nil)", s, e, err)
	}
}

func TestCharToLineCol(t *testing.T) {
	idx := NewFromString("foo\nbar\nbaz")
	line, col, err := idx.CharToLineCol(5)
	if err != nil || line != 1 || col != 1 {
		t.Fatalf("CharToLineCol(5) = (%d,%d,%v), want (1,1,nil)", line, col, err)
	}
}

func TestLineColToChar(t *testing.T) {
	idx := NewFromString("foo\nbar\nbaz")
	c, err := idx.LineColToChar(2, 1)
	if err != nil || c != 9 {
		t.Fatalf("LineColToChar(2,1) = (%d,%v), want (9,nil)", c, err)
	}
}

func TestRoundTrip(t *testing.T) {
	idx := NewFromString("foo\nbar\nbaz")
	for char := 0; char <= idx.TotalChars(); char++ {
		line, col, err := idx.CharToLineCol(char)
		if err != nil {
			t.Fatalf("CharToLineCol(%d) error: %v", char, err)
		}
		back, err := idx.LineColToChar(line, col)
		if err != nil || back != char {
			t.Fatalf("round trip failed at char=%d: got line=%d col=%d back=%d", char, line, col, back)
		}
	}
}

func TestApplyEditInsertNewline(t *testing.T) {
	idx := NewFromString("hello world")
	idx.ApplyEdit(5, "", "\n")
	if idx.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", idx.LineCount())
	}
	s, e, _ := idx.LineCharRange(0)
	if s != 0 || e != 5 {
		t.Fatalf("line 0 range = (%d,%d), want (0,5)", s, e)
	}
	s, e, _ = idx.LineCharRange(1)
	if s != 6 || e != 12 {
		t.Fatalf("line 1 range = (%d,%d), want (6,12)", s, e)
	}
}

func TestApplyEditDeleteNewline(t *testing.T) {
	idx := NewFromString("foo\nbar")
	idx.ApplyEdit(3, "\n", "")
	if idx.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", idx.LineCount())
	}
	if idx.TotalChars() != 6 {
		t.Fatalf("TotalChars() = %d, want 6", idx.TotalChars())
	}
}

func TestApplyEditShiftsLaterLines(t *testing.T) {
	idx := NewFromString("aa\nbb\ncc")
	idx.ApplyEdit(0, "", "XYZ")
	s, _, _ := idx.LineCharRange(1)
	if s != 6 {
		t.Fatalf("line 1 start = %d, want 6", s)
	}
}
