package quad

// routeThreshold is the extent, as a fraction of the local unit square's
// side, at which a segment stops descending and is stored. Half the unit
// square: anything larger cannot fit a single child quadrant.
const routeThreshold = 0.5

// RouteStroke stores the line segment p1→p2, given in h's local [-1,1]²
// frame, at the appropriate depth below h. Segments whose maximum per-axis
// extent reaches half the unit square are stored directly in h; smaller
// segments are remapped into the quadrant containing their midpoint and
// routed into that child, doubling the scale per level. The child creation
// path stitches neighbor links as it goes.
//
// Exactly one primitive is created per call; it is never duplicated or
// split across nodes. Returns the handle of the node that received the
// primitive.
func (t *Tree) RouteStroke(h Handle, p1, p2 Point, scale float32, style Style, order uint32) Handle {
	for {
		ext := p1.MaxExtent(p2)
		// Degenerate segments would otherwise descend forever.
		if ext >= routeThreshold || ext == 0 {
			n := t.n(h)
			n.prims = append(n.prims, NewLine(p1, p2, scale, style, order))
			return h
		}
		mid := p1.Mid(p2)
		c := Corner{}
		if mid.X > 0 {
			c.X = 1
		}
		if mid.Y > 0 {
			c.Y = 1
		}
		p1 = remap(p1, c)
		p2 = remap(p2, c)
		scale *= 2
		h = t.linkedChild(h, c)
	}
}

// remap reprojects a point from a node's local frame into the local frame
// of the child at corner c: shift the chosen quadrant onto the origin,
// then double.
func remap(p Point, c Corner) Point {
	if c.X == 0 {
		p.X += 0.5
	} else {
		p.X -= 0.5
	}
	if c.Y == 0 {
		p.Y += 0.5
	} else {
		p.Y -= 0.5
	}
	return Point{X: 2 * p.X, Y: 2 * p.Y}
}
