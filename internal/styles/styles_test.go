package styles

import (
	"testing"

	"github.com/dshills/edcore/internal/interval"
)

func TestReplaceAndStylesAt(t *testing.T) {
	m := NewManager()
	m.ReplaceLayer(LayerBase, []interval.Interval{{Start: 0, End: 10, Payload: StyleID(1)}})
	m.ReplaceLayer(LayerSublimeSyntax, []interval.Interval{{Start: 2, End: 5, Payload: StyleID(2)}})
	got := m.StylesAt(3)
	if len(got) != 2 || got[0] != StyleID(1) || got[1] != StyleID(2) {
		t.Fatalf("StylesAt(3) = %v, want [1,2]", got)
	}
	got = m.StylesAt(6)
	if len(got) != 1 || got[0] != StyleID(1) {
		t.Fatalf("StylesAt(6) = %v, want [1]", got)
	}
}

func TestClearLayerIdempotent(t *testing.T) {
	m := NewManager()
	m.ReplaceLayer(LayerBase, []interval.Interval{{Start: 0, End: 3, Payload: StyleID(1)}})
	m.ClearLayer(LayerBase)
	m.ClearLayer(LayerBase) // idempotent
	if got := m.StylesAt(1); len(got) != 0 {
		t.Fatalf("StylesAt after clear = %v, want empty", got)
	}
}

func TestApplyEditShiftsAllLayers(t *testing.T) {
	m := NewManager()
	m.ReplaceLayer(LayerBase, []interval.Interval{{Start: 5, End: 10, Payload: StyleID(1)}})
	m.ApplyEdit(0, 0, 2)
	got := m.SpansInRange(0, 100)
	if len(got) != 1 || got[0].Start != 7 || got[0].End != 12 {
		t.Fatalf("shifted span = %+v, want [7,12)", got)
	}
}

func TestBlend(t *testing.T) {
	a := RGBA{R: 0, G: 0, B: 0, A: 255}
	b := RGBA{R: 255, G: 255, B: 255, A: 255}
	mid := Blend(a, b, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Fatalf("Blend midpoint = %+v, want an intermediate value", mid)
	}
}
