package delta

import "testing"

func TestApplyMultiCaretScenario(t *testing.T) {
	text := "foo\nfoo\nfoo\n"
	edits := []TextEditDelta{
		{RangeStart: 11, RangeEnd: 11, InsertedText: "!"},
		{RangeStart: 7, RangeEnd: 7, InsertedText: "!"},
		{RangeStart: 3, RangeEnd: 3, InsertedText: "!"},
	}
	got := Apply(text, edits)
	want := "foo!\nfoo!\nfoo!\n"
	if got != want {
		t.Fatalf("Apply = %q, want %q", got, want)
	}
}

func TestDeltaFidelity(t *testing.T) {
	pre := "hello world"
	edits := []TextEditDelta{{RangeStart: 6, RangeEnd: 11, DeletedText: "world", InsertedText: "there"}}
	post := Apply(pre, edits)
	if post != "hello there" {
		t.Fatalf("Apply = %q, want %q", post, "hello there")
	}
}

func TestInvertEdit(t *testing.T) {
	e := TextEditDelta{RangeStart: 6, RangeEnd: 11, DeletedText: "world", InsertedText: "there"}
	inv := e.Invert()
	pre := "hello world"
	post := Apply(pre, []TextEditDelta{e})
	back := Apply(post, []TextEditDelta{inv})
	if back != pre {
		t.Fatalf("round trip via Invert = %q, want %q", back, pre)
	}
}

func TestTextDeltaInvertOrder(t *testing.T) {
	d := TextDelta{
		Edits: []TextEditDelta{
			{RangeStart: 11, RangeEnd: 11, InsertedText: "!"},
			{RangeStart: 7, RangeEnd: 7, InsertedText: "!"},
			{RangeStart: 3, RangeEnd: 3, InsertedText: "!"},
		},
	}
	pre := "foo\nfoo\nfoo\n"
	post := Apply(pre, d.Edits)
	inv := d.Invert()
	back := Apply(post, inv.Edits)
	if back != pre {
		t.Fatalf("round trip via TextDelta.Invert = %q, want %q", back, pre)
	}
}
