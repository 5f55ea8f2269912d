package quad

import "testing"

func TestNewRootValid(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	if !tr.Valid(r) {
		t.Fatal("fresh root handle does not validate")
	}
	if tr.Valid(Nil) {
		t.Error("Nil handle validates")
	}
	if got, want := tr.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestGetOrCreateChildIdempotent(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	c := Corner{X: 1, Y: 0}
	first := tr.GetOrCreateChild(r, c)
	second := tr.GetOrCreateChild(r, c)
	if first != second {
		t.Errorf("repeated child creation returned distinct handles: %v vs %v", first, second)
	}
	if got := tr.Corner(first); got != c {
		t.Errorf("child corner = %v, want %v", got, c)
	}
	if got := tr.Parent(first); got != r {
		t.Errorf("child parent = %v, want root %v", got, r)
	}
}

func TestGetOrCreateParentAntipodal(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot() // corner (0,0)

	p := tr.GetOrCreateParent(r)
	if got, want := tr.Corner(p), (Corner{X: 1, Y: 1}); got != want {
		t.Errorf("synthesized parent corner = %v, want %v", got, want)
	}
	if got := tr.Child(p, Corner{}); got != r {
		t.Errorf("parent's (0,0) child = %v, want original root %v", got, r)
	}
	if again := tr.GetOrCreateParent(r); again != p {
		t.Errorf("second call synthesized a new parent: %v vs %v", again, p)
	}
}

func TestGetOrCreateNeighborIdentity(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	for _, d := range []Direction{PosX, NegX, PosY, NegY} {
		first := tr.GetOrCreateNeighbor(r, d)
		second := tr.GetOrCreateNeighbor(r, d)
		if first != second {
			t.Errorf("%v: repeated neighbor resolution returned %v then %v", d, first, second)
		}
		if back := tr.GetOrCreateNeighbor(first, d.Opposite()); back != r {
			t.Errorf("%v: neighbor's %v neighbor = %v, want original %v", d, d.Opposite(), back, r)
		}
	}
}

func TestGetNeighborDoesNotCreate(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()

	before := tr.Len()
	if got := tr.GetNeighbor(r, PosX); got != Nil {
		t.Errorf("GetNeighbor on isolated root = %v, want Nil", got)
	}
	if got := tr.Len(); got != before {
		t.Errorf("GetNeighbor allocated nodes: Len %d -> %d", before, got)
	}
}

func TestTryCleanupReleasesEmptyLeaf(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	ch := tr.GetOrCreateChild(r, Corner{X: 1, Y: 1})

	tr.TryCleanup(ch)
	if tr.Valid(ch) {
		t.Error("empty unpinned leaf survived cleanup")
	}
	if got := tr.Child(r, Corner{X: 1, Y: 1}); got != Nil {
		t.Errorf("parent still links released child: %v", got)
	}
	if !tr.Valid(r) {
		t.Error("structural root was released")
	}
}

func TestTryCleanupCascades(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	a := tr.GetOrCreateChild(r, Corner{X: 0, Y: 1})
	b := tr.GetOrCreateChild(a, Corner{X: 1, Y: 0})

	tr.TryCleanup(b)
	if tr.Valid(b) || tr.Valid(a) {
		t.Error("cleanup did not cascade through empty ancestors")
	}
	if !tr.Valid(r) {
		t.Error("cascade released the structural root")
	}
	if got, want := tr.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestTryCleanupStopsAtPins(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	ch := tr.GetOrCreateChild(r, Corner{})

	tr.Pin(ch)
	tr.TryCleanup(ch)
	if !tr.Valid(ch) {
		t.Fatal("pinned node was released")
	}

	tr.Unpin(ch)
	tr.TryCleanup(ch)
	if tr.Valid(ch) {
		t.Error("unpinned empty node survived cleanup")
	}
}

func TestTryCleanupStopsAtContent(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	ch := tr.GetOrCreateChild(r, Corner{})
	tr.RouteStroke(ch, Pt(-0.4, 0), Pt(0.4, 0), 1, Style{Width: 0.01}, 0)

	tr.TryCleanup(ch)
	if !tr.Valid(ch) {
		t.Error("node holding a primitive was released")
	}
}

func TestStaleHandleStopsValidating(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	ch := tr.GetOrCreateChild(r, Corner{X: 1, Y: 0})
	stale := ch

	tr.TryCleanup(ch)
	// Reuse the freed slot.
	other := tr.GetOrCreateChild(r, Corner{X: 0, Y: 1})

	if tr.Valid(stale) {
		t.Error("stale handle validates after slot reuse")
	}
	if !tr.Valid(other) {
		t.Error("reallocated node does not validate")
	}
}

func TestStitchLinksExistingCousin(t *testing.T) {
	tr := NewTree()
	r := tr.NewRoot()
	rn := tr.GetOrCreateNeighbor(r, PosX)
	cousin := tr.GetOrCreateChild(rn, Corner{X: 0, Y: 1})

	ch := tr.linkedChild(r, Corner{X: 1, Y: 1})
	if got := tr.GetNeighbor(ch, PosX); got != cousin {
		t.Errorf("stitched neighbor = %v, want pre-existing cousin %v", got, cousin)
	}
	if back := tr.GetNeighbor(cousin, NegX); back != ch {
		t.Errorf("link is not mutual: cousin's NegX neighbor = %v, want %v", back, ch)
	}
}
