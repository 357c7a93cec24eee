package charwidth

import "testing"

func TestWidth(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want int
	}{
		{"ascii letter", 'a', 1},
		{"ascii digit", '5', 1},
		{"cjk wide", '中', 2},
		{"cjk wide kana", 'あ', 2},
		{"combining acute", '́', 0},
		{"tab treated as normal here", '\t', 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Width(c.r); got != c.want {
				t.Errorf("Width(%q) = %d, want %d", c.r, got, c.want)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("a中b"); got != 4 {
		t.Errorf("StringWidth = %d, want 4", got)
	}
}

func TestTabStop(t *testing.T) {
	cases := []struct {
		col, tabWidth, want int
	}{
		{0, 4, 4},
		{1, 4, 3},
		{4, 4, 4},
		{6, 4, 2},
	}
	for _, c := range cases {
		if got := TabStop(c.col, c.tabWidth); got != c.want {
			t.Errorf("TabStop(%d,%d) = %d, want %d", c.col, c.tabWidth, got, c.want)
		}
	}
}
