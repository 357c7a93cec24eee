package segment

import "testing"

func TestBoundariesASCII(t *testing.T) {
	got := Boundaries("abc")
	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Boundaries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Boundaries = %v, want %v", got, want)
		}
	}
}

func TestBoundariesCombining(t *testing.T) {
	// "e" + combining acute accent (U+0301) forms one grapheme cluster.
	s := "ébc"
	got := Boundaries(s)
	want := []int{0, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Boundaries(%q) = %v, want %v", s, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Boundaries(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestNextPrevBoundary(t *testing.T) {
	s := "ébc"
	if got := NextBoundary(s, 0); got != 2 {
		t.Errorf("NextBoundary = %d, want 2", got)
	}
	if got := PrevBoundary(s, 2); got != 0 {
		t.Errorf("PrevBoundary = %d, want 0", got)
	}
	if !IsBoundary(s, 2) {
		t.Errorf("IsBoundary(2) = false, want true")
	}
	if IsBoundary(s, 1) {
		t.Errorf("IsBoundary(1) = true, want false")
	}
}
