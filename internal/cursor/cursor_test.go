package cursor

import "testing"

func TestSelectionBasics(t *testing.T) {
	s := NewRange(5, 2)
	if s.Start() != 2 || s.End() != 5 {
		t.Fatalf("Start/End = %d/%d, want 2/5", s.Start(), s.End())
	}
	if s.IsForward() {
		t.Fatal("expected backward selection")
	}
}

func TestSetNormalizeMergesOverlaps(t *testing.T) {
	s := NewSetFrom([]Selection{
		NewRange(0, 5),
		NewRange(3, 8),
		NewCursor(20),
	})
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 (overlap merged)", s.Count())
	}
	all := s.All()
	if all[0].Start() != 0 || all[0].End() != 8 {
		t.Fatalf("merged selection = %+v, want [0,8)", all[0])
	}
}

func TestTransformOffsetBasic(t *testing.T) {
	e := Edit{RangeStart: 5, RangeEnd: 5, InsertedText: "xyz"}
	if got := TransformOffset(2, e); got != 2 {
		t.Fatalf("before edit: got %d, want 2", got)
	}
	if got := TransformOffset(10, e); got != 13 {
		t.Fatalf("after edit: got %d, want 13", got)
	}
}

func TestTransformOffsetStickyInsertionPoint(t *testing.T) {
	e := Edit{RangeStart: 5, RangeEnd: 5, InsertedText: "xyz"}
	if got := TransformOffsetSticky(5, e, true); got != 5 {
		t.Fatalf("sticky: got %d, want 5", got)
	}
	if got := TransformOffsetSticky(5, e, false); got != 8 {
		t.Fatalf("non-sticky: got %d, want 8", got)
	}
}

func TestTransformOffsetInsideDeletedRange(t *testing.T) {
	e := Edit{RangeStart: 2, RangeEnd: 8, InsertedText: "Q"}
	if got := TransformOffset(5, e); got != 3 {
		t.Fatalf("inside deleted range: got %d, want 3", got)
	}
}

func TestTransformSetMultiCaretScenario(t *testing.T) {
	// "foo\nfoo\nfoo\n" inserting "!" at char offsets 3, 7, 11.
	set := NewSetFrom([]Selection{NewCursor(3), NewCursor(7), NewCursor(11)})
	edits := []Edit{
		{RangeStart: 11, RangeEnd: 11, InsertedText: "!"},
		{RangeStart: 7, RangeEnd: 7, InsertedText: "!"},
		{RangeStart: 3, RangeEnd: 3, InsertedText: "!"},
	}
	TransformSetMulti(set, edits)
	all := set.All()
	if len(all) != 3 {
		t.Fatalf("Count() = %d, want 3", len(all))
	}
	want := []int{4, 9, 14}
	for i, sel := range all {
		if sel.Head != want[i] {
			t.Fatalf("cursor %d head = %d, want %d", i, sel.Head, want[i])
		}
	}
}
