package quad

// Collect appends every primitive stored in h's subtree to out, pairing
// each with the destination rectangle of its owning node. dest is the
// rectangle h itself maps to; each child's rectangle is the matching
// quarter of its parent's. The result is in traversal order; callers
// sort by paint order across all collected nodes.
func (t *Tree) Collect(h Handle, dest Rect, out []Placed) []Placed {
	for _, p := range t.n(h).prims {
		out = append(out, Placed{Primitive: p, Dest: dest})
	}
	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			c := Corner{X: x, Y: y}
			ch := t.Child(h, c)
			if ch == Nil {
				continue
			}
			out = t.Collect(ch, dest.Quadrant(c), out)
		}
	}
	return out
}

// Walk visits h and every node below it in depth-first order. It is the
// traversal used by the codec and by tests verifying that no primitive is
// lost or duplicated.
func (t *Tree) Walk(h Handle, visit func(Handle)) {
	visit(h)
	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			ch := t.Child(h, Corner{X: x, Y: y})
			if ch == Nil {
				continue
			}
			t.Walk(ch, visit)
		}
	}
}

// Root follows parent links from h upward and returns the structural root:
// the first node whose parent does not resolve.
func (t *Tree) Root(h Handle) Handle {
	for {
		p := t.Parent(h)
		if p == Nil {
			return h
		}
		h = p
	}
}
