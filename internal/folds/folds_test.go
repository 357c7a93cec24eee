package folds

import "testing"

func TestScenarioFourFoldShifting(t *testing.T) {
	m := NewManager()
	m.AddUserFold(2, 5, true, "...")

	// Insert "\n" at the end of L0: splits line 0 into two lines, k=+1,
	// the edit is confined to line 0.
	m.ApplyLineEdit(0, 0, 1)
	got := m.UserFolds()[0]
	if got.StartLine != 3 || got.EndLine != 6 {
		t.Fatalf("after insert: got %+v, want start=3 end=6", got)
	}

	// Delete the entire L4 (now inside the region): k=-1.
	m.ApplyLineEdit(4, 4, -1)
	got = m.UserFolds()[0]
	if got.StartLine != 3 || got.EndLine != 5 {
		t.Fatalf("after delete: got %+v, want start=3 end=5", got)
	}
}

func TestFoldDroppedWhenFullyConsumed(t *testing.T) {
	m := NewManager()
	m.AddUserFold(2, 5, true, "")
	m.ApplyLineEdit(0, 10, -8)
	if len(m.UserFolds()) != 0 {
		t.Fatalf("UserFolds() = %+v, want empty", m.UserFolds())
	}
}

func TestFoldUnaffectedBelow(t *testing.T) {
	m := NewManager()
	m.AddUserFold(2, 5, true, "")
	m.ApplyLineEdit(8, 8, 2)
	got := m.UserFolds()[0]
	if got.StartLine != 2 || got.EndLine != 5 {
		t.Fatalf("fold changed unexpectedly: %+v", got)
	}
}

func TestToggleUserFold(t *testing.T) {
	m := NewManager()
	m.AddUserFold(1, 3, false, "")
	if !m.ToggleUserFold(1) {
		t.Fatal("ToggleUserFold returned false")
	}
	if !m.UserFolds()[0].Collapsed {
		t.Fatal("fold not collapsed after toggle")
	}
}

func TestReplaceDerivedPreservesUser(t *testing.T) {
	m := NewManager()
	m.AddUserFold(1, 2, true, "")
	m.ReplaceDerived([]Region{{StartLine: 5, EndLine: 6}})
	if len(m.UserFolds()) != 1 {
		t.Fatalf("user folds lost after ReplaceDerived")
	}
	if len(m.All()) != 2 {
		t.Fatalf("All() = %d, want 2", len(m.All()))
	}
}
