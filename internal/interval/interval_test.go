package interval

import "testing"

func TestInsertSortedAndQuery(t *testing.T) {
	tr := New()
	tr.Insert(5, 10, "b")
	tr.Insert(0, 3, "a")
	tr.Insert(8, 12, "c")
	all := tr.All()
	if len(all) != 3 || all[0].Payload != "a" || all[1].Payload != "b" || all[2].Payload != "c" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestPointQuery(t *testing.T) {
	tr := New()
	tr.Insert(2, 7, "x")
	tr.Insert(10, 20, "y")
	got := tr.PointQuery(5)
	if len(got) != 1 || got[0].Payload != "x" {
		t.Fatalf("PointQuery(5) = %+v", got)
	}
	if got := tr.PointQuery(7); len(got) != 0 {
		t.Fatalf("PointQuery(7) (half-open end) = %+v, want empty", got)
	}
}

func TestRangeQuery(t *testing.T) {
	tr := New()
	tr.Insert(0, 5, "a")
	tr.Insert(5, 10, "b")
	tr.Insert(20, 25, "c")
	got := tr.RangeQuery(4, 21)
	if len(got) != 3 {
		t.Fatalf("RangeQuery = %+v, want 3 results", got)
	}
}

func TestApplyEditUnaffectedBefore(t *testing.T) {
	tr := New()
	tr.Insert(0, 3, "a")
	tr.ApplyEdit(5, 5, 2) // insert 2 chars at offset 5, after the interval
	got := tr.All()
	if got[0].Start != 0 || got[0].End != 3 {
		t.Fatalf("interval shifted unexpectedly: %+v", got[0])
	}
}

func TestApplyEditShiftsAfter(t *testing.T) {
	tr := New()
	tr.Insert(10, 15, "a")
	tr.ApplyEdit(0, 0, 3) // insert 3 chars before the interval
	got := tr.All()
	if got[0].Start != 13 || got[0].End != 18 {
		t.Fatalf("interval not shifted: %+v", got[0])
	}
}

func TestApplyEditOverlapDeleteShrinks(t *testing.T) {
	// "hello world", interval [2,7) covering "llo w"; delete [0,3) "hel".
	tr := New()
	tr.Insert(2, 7, "style")
	tr.ApplyEdit(0, 3, 0)
	got := tr.All()
	if got[0].Start != 0 || got[0].End != 4 {
		t.Fatalf("interval = %+v, want [0,4)", got[0])
	}
}

func TestApplyEditDropsFullyConsumedInterval(t *testing.T) {
	tr := New()
	tr.Insert(2, 5, "a")
	tr.ApplyEdit(0, 10, 0)
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 (interval fully consumed)", tr.Len())
	}
}

func TestApplyEditStickyExtendsZeroWidthAtInsertionPoint(t *testing.T) {
	tr := New()
	tr.Insert(5, 5, "marker")
	tr.ApplyEditSticky(5, 5, 3)
	got := tr.All()
	if got[0].Start != 5 || got[0].End != 8 {
		t.Fatalf("sticky interval = %+v, want [5,8)", got[0])
	}
}

func TestReplaceAndClear(t *testing.T) {
	tr := New()
	tr.Replace([]Interval{{Start: 3, End: 5}, {Start: 0, End: 2}})
	if tr.Len() != 2 || tr.All()[0].Start != 0 {
		t.Fatalf("Replace did not sort: %+v", tr.All())
	}
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("Clear left %d intervals", tr.Len())
	}
}
