package storage

import "testing"

func TestNewFromStringAndText(t *testing.T) {
	tbl, err := NewFromString("hello world")
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", tbl.Len())
	}
	if got := tbl.Text(); got != "hello world" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestInsertAndDelete(t *testing.T) {
	tbl, _ := NewFromString("hello world")
	if err := tbl.Insert(5, " there"); err != nil {
		t.Fatal(err)
	}
	if got, want := tbl.Text(), "hello there world"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if err := tbl.Delete(5, 11); err != nil {
		t.Fatal(err)
	}
	if got, want := tbl.Text(), "hello world"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestInsertAtStartAndEnd(t *testing.T) {
	tbl, _ := NewFromString("bcd")
	if err := tbl.Insert(0, "a"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(tbl.Len(), "e"); err != nil {
		t.Fatal(err)
	}
	if got, want := tbl.Text(), "abcde"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestAdjacentInsertsMerge(t *testing.T) {
	tbl := New()
	if err := tbl.Insert(0, "foo"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(3, "bar"); err != nil {
		t.Fatal(err)
	}
	if len(tbl.pieces) != 1 {
		t.Fatalf("expected adjacent Add pieces to merge, got %d pieces", len(tbl.pieces))
	}
	if got, want := tbl.Text(), "foobar"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestDeleteSpanningMultiplePieces(t *testing.T) {
	tbl, _ := NewFromString("0123456789")
	if err := tbl.Insert(10, "ABCDEF"); err != nil {
		t.Fatal(err)
	}
	// Now logically "0123456789ABCDEF" across two pieces (they won't merge
	// since one is Original and one is Add).
	if err := tbl.Delete(5, 12); err != nil {
		t.Fatal(err)
	}
	if got, want := tbl.Text(), "01234CDEF"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestGetTextRangePartial(t *testing.T) {
	tbl, _ := NewFromString("hello world")
	got, err := tbl.GetTextRange(6, 11)
	if err != nil {
		t.Fatal(err)
	}
	if got != "world" {
		t.Fatalf("GetTextRange = %q, want world", got)
	}
}

func TestOutOfRange(t *testing.T) {
	tbl, _ := NewFromString("abc")
	if err := tbl.Insert(10, "x"); err != ErrOutOfRange {
		t.Fatalf("Insert out of range err = %v", err)
	}
	if err := tbl.Delete(0, 10); err != ErrOutOfRange {
		t.Fatalf("Delete out of range err = %v", err)
	}
}

func TestInvalidUTF8(t *testing.T) {
	if _, err := NewFromString(string([]byte{0xff, 0xfe})); err != ErrInvalidUTF8 {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestCompactPreservesText(t *testing.T) {
	tbl, _ := NewFromString("hello world")
	_ = tbl.Insert(5, " there")
	_ = tbl.Delete(0, 5)
	before := tbl.Text()
	tbl.Compact()
	after := tbl.Text()
	if before != after {
		t.Fatalf("Compact changed text: %q != %q", before, after)
	}
}

func TestMultiByteUnicode(t *testing.T) {
	tbl, _ := NewFromString("a中b")
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	if err := tbl.Insert(2, "文"); err != nil {
		t.Fatal(err)
	}
	if got, want := tbl.Text(), "a中文b"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}
