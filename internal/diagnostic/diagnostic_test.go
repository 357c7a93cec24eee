package diagnostic

import (
	"testing"

	"github.com/dshills/edcore/internal/interval"
)

func TestReplaceAndQuery(t *testing.T) {
	m := NewManager()
	m.Replace([]Diagnostic{
		{Range: interval.Interval{Start: 2, End: 5}, Severity: SeverityError, Message: "boom"},
	})
	all := m.All()
	if len(all) != 1 || all[0].Message != "boom" {
		t.Fatalf("All() = %+v", all)
	}
	if got := m.InRange(10, 20); len(got) != 0 {
		t.Fatalf("InRange out of range = %+v, want empty", got)
	}
}

func TestClearIdempotent(t *testing.T) {
	m := NewManager()
	m.Replace([]Diagnostic{{Range: interval.Interval{Start: 0, End: 1}}})
	m.Clear()
	m.Clear()
	if len(m.All()) != 0 {
		t.Fatalf("All() after clear = %+v", m.All())
	}
}

func TestApplyEditShifts(t *testing.T) {
	m := NewManager()
	m.Replace([]Diagnostic{{Range: interval.Interval{Start: 5, End: 8}, Message: "x"}})
	m.ApplyEdit(0, 3, 0)
	got := m.All()
	if got[0].Range.Start != 2 || got[0].Range.End != 5 {
		t.Fatalf("shifted diagnostic = %+v", got[0])
	}
}
