package quad

// GetOrCreateParent returns the node's parent, synthesizing a fresh
// structural ancestor when none resolves. The synthesized parent takes the
// antipodal corner, which keeps outward growth alternating and guarantees
// that neighbor resolution through new roots terminates.
func (t *Tree) GetOrCreateParent(h Handle) Handle {
	if p := t.Parent(h); p != Nil {
		return p
	}
	c := t.Corner(h)
	p := t.alloc(c.Opposite())
	t.n(p).children[c.Y][c.X] = h
	t.n(h).parent = p
	return p
}

// GetOrCreateChild returns the child at the given corner, creating an
// empty one if absent. This is the cheap path: no neighbor stitching is
// attempted.
func (t *Tree) GetOrCreateChild(h Handle, c Corner) Handle {
	if ch := t.Child(h, c); ch != Nil {
		return ch
	}
	ch := t.alloc(c)
	t.n(ch).parent = h
	t.n(h).children[c.Y][c.X] = ch
	return ch
}

// linkedChild returns the child at the given corner, creating it if absent
// and stitching mutual weak neighbor links on both axes using the parent's
// own resolved neighbors. The stroke router uses this path so that freshly
// subdivided regions stay navigable without a repair pass.
func (t *Tree) linkedChild(h Handle, c Corner) Handle {
	if ch := t.Child(h, c); ch != Nil {
		return ch
	}
	ch := t.GetOrCreateChild(h, c)
	t.stitch(ch, horizontalOutward(c))
	t.stitch(ch, verticalOutward(c))
	return ch
}

func horizontalOutward(c Corner) Direction {
	if c.X == 1 {
		return PosX
	}
	return NegX
}

func verticalOutward(c Corner) Direction {
	if c.Y == 1 {
		return PosY
	}
	return NegY
}

// stitch links ch to the same-depth node on the far side of its parent's
// boundary in direction d, if that node already exists. Links are cached
// symmetrically on both sides.
func (t *Tree) stitch(ch Handle, d Direction) {
	p := t.Parent(ch)
	if p == Nil {
		return
	}
	pn := t.GetNeighbor(p, d)
	if pn == Nil {
		return
	}
	c := t.Corner(ch)
	cand := t.Child(pn, c.Mirror(d))
	if cand == Nil {
		return
	}
	t.link(ch, cand, d)
}

// link installs the mutual weak neighbor pair a<->b on d's axis.
func (t *Tree) link(a, b Handle, d Direction) {
	if d.Vertical() {
		t.n(a).vNbr = b
		t.n(b).vNbr = a
	} else {
		t.n(a).hNbr = b
		t.n(b).hNbr = a
	}
}

// GetNeighbor resolves the same-depth neighbor in direction d without
// creating anything. When the node's corner faces away from d, the
// neighbor is the mirrored-corner sibling within the same parent;
// otherwise the cached weak link is consulted. An absent or stale result
// is Nil, never an error.
func (t *Tree) GetNeighbor(h Handle, d Direction) Handle {
	c := t.Corner(h)
	if c.facesAway(d) {
		p := t.Parent(h)
		if p == Nil {
			return Nil
		}
		return t.Child(p, c.Mirror(d))
	}
	n := t.n(h)
	link := n.hNbr
	if d.Vertical() {
		link = n.vNbr
	}
	if !t.Valid(link) {
		// Drop the stale link so it is not consulted again.
		if d.Vertical() {
			n.vNbr = Nil
		} else {
			n.hNbr = Nil
		}
		return Nil
	}
	return link
}

// GetOrCreateNeighbor resolves the same-depth neighbor in direction d,
// creating whatever ancestors and cousins are required. The sibling case
// is O(1); the cross-parent case recurses through the parent's neighbor
// and descends into its mirrored-corner child, caching the result as a
// mutual weak pair. Two successive calls with no structural change in
// between return the identical handle.
func (t *Tree) GetOrCreateNeighbor(h Handle, d Direction) Handle {
	c := t.Corner(h)
	p := t.GetOrCreateParent(h)
	if c.facesAway(d) {
		return t.GetOrCreateChild(p, c.Mirror(d))
	}
	if nb := t.GetNeighbor(h, d); nb != Nil {
		return nb
	}
	pn := t.GetOrCreateNeighbor(p, d)
	nb := t.GetOrCreateChild(pn, c.Mirror(d))
	t.link(h, nb, d)
	return nb
}

// TryCleanup detaches the node from its parent if it holds no children and
// no primitives, then walks upward repeating the check until it reaches a
// non-empty ancestor or a structural root. Nodes pinned by the viewport
// window are left alone: the window's hold is the ownership that keeps a
// visible cell alive between remaps.
func (t *Tree) TryCleanup(h Handle) {
	for t.Valid(h) {
		n := t.n(h)
		if n.pins > 0 || len(n.prims) > 0 || t.hasChildren(h) {
			return
		}
		p := t.Parent(h)
		if p == Nil {
			return
		}
		c := n.corner
		t.n(p).children[c.Y][c.X] = Nil
		t.release(h)
		h = p
	}
}

func (t *Tree) hasChildren(h Handle) bool {
	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			if t.Child(h, Corner{X: x, Y: y}) != Nil {
				return true
			}
		}
	}
	return false
}
