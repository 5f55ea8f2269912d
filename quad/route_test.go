package quad

import "testing"

func TestRouteStoresLargeSegmentAtEntry(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	dst := tr.RouteStroke(r, Pt(-0.9, 0), Pt(0.9, 0), 1, Style{Width: 0.01}, 7)
	if dst != r {
		t.Fatalf("segment spanning the cell descended to %v, want entry node %v", dst, r)
	}
	prims := tr.Primitives(r)
	if len(prims) != 1 {
		t.Fatalf("len(Primitives) = %d, want 1", len(prims))
	}
	p := prims[0]
	if p.Kind != KindLine || p.Order != 7 {
		t.Errorf("stored primitive = %+v, want line with order 7", p)
	}
	if p.Width != 0.01 {
		t.Errorf("width = %g, want unscaled 0.01", p.Width)
	}
}

func TestRouteDescendsOneLevel(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	// Extent 0.25 with midpoint in the (+,+) quadrant: one remap doubles it
	// past the threshold. Dyadic coordinates keep the remap exact.
	dst := tr.RouteStroke(r, Pt(0.375, 0.375), Pt(0.625, 0.625), 1, Style{Width: 0.01}, 0)

	want := tr.Child(r, Corner{X: 1, Y: 1})
	if want == Nil || dst != want {
		t.Fatalf("segment stored at %v, want (1,1) child %v", dst, want)
	}
	if got := len(tr.Primitives(r)); got != 0 {
		t.Errorf("entry node holds %d primitives, want 0", got)
	}
	p := tr.Primitives(dst)[0]
	if p.X1 != -0.25 || p.Y1 != -0.25 || p.X2 != 0.25 || p.Y2 != 0.25 {
		t.Errorf("remapped endpoints = (%g,%g)-(%g,%g), want (-0.25,-0.25)-(0.25,0.25)",
			p.X1, p.Y1, p.X2, p.Y2)
	}
	if p.Width != 0.02 {
		t.Errorf("width = %g, want 0.02 after one doubling", p.Width)
	}
}

func TestRouteMidpointTieBreak(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	// Midpoint exactly at the origin resolves to the (0,0) quadrant.
	tr.RouteStroke(r, Pt(-0.2, 0), Pt(0.2, 0), 1, Style{Width: 0.01}, 0)

	ch := tr.Child(r, Corner{})
	if ch == Nil {
		t.Fatal("no (0,0) child created for origin-centered segment")
	}
	if got := len(tr.Primitives(ch)); got != 1 {
		t.Errorf("(0,0) child holds %d primitives, want 1", got)
	}
}

func TestRouteDegenerateDot(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	dst := tr.RouteStroke(r, Pt(0.3, -0.1), Pt(0.3, -0.1), 1, Style{Width: 0.01}, 0)
	if dst != r {
		t.Fatalf("zero-extent segment descended to %v, want entry node %v", dst, r)
	}
	if got := tr.Len(); got != 1 {
		t.Errorf("Len() = %d after degenerate stroke, want 1", got)
	}
}

func TestRouteSinglePlacement(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	tr.RouteStroke(r, Pt(0.01, 0.01), Pt(0.02, 0.02), 1, Style{Width: 0.01}, 0)

	var total int
	tr.Walk(r, func(h Handle) {
		total += len(tr.Primitives(h))
	})
	if total != 1 {
		t.Errorf("primitive stored %d times across the subtree, want exactly once", total)
	}
}
