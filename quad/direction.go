package quad

// Direction identifies one of the four axis-aligned neighbor directions
// on the plane.
type Direction uint8

const (
	PosX Direction = iota
	NegX
	PosY
	NegY
)

// Vertical reports whether the direction runs along the Y axis.
func (d Direction) Vertical() bool {
	return d == PosY || d == NegY
}

// Positive reports the direction's polarity along its axis.
func (d Direction) Positive() bool {
	return d == PosX || d == PosY
}

// Opposite returns the direction pointing the other way on the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case PosX:
		return NegX
	case NegX:
		return PosX
	case PosY:
		return NegY
	default:
		return PosY
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case PosX:
		return "PosX"
	case NegX:
		return "NegX"
	case PosY:
		return "PosY"
	case NegY:
		return "NegY"
	default:
		return "Unknown"
	}
}

// Corner is a node's quadrant position within its parent. Each axis bit is
// 0 for the negative half and 1 for the positive half.
type Corner struct {
	X, Y uint8
}

// Opposite returns the diagonally mirrored corner.
func (c Corner) Opposite() Corner {
	return Corner{X: 1 - c.X, Y: 1 - c.Y}
}

// Mirror flips the corner bit on the direction's axis.
func (c Corner) Mirror(d Direction) Corner {
	if d.Vertical() {
		return Corner{X: c.X, Y: 1 - c.Y}
	}
	return Corner{X: 1 - c.X, Y: c.Y}
}

// bit returns the corner's bit on the direction's axis.
func (c Corner) bit(d Direction) uint8 {
	if d.Vertical() {
		return c.Y
	}
	return c.X
}

// facesAway reports whether a node with this corner reaches its neighbor in
// direction d through its own parent. That is the case exactly when the
// corner bit on d's axis does not match d's polarity: the neighbor is then
// the mirrored-corner sibling.
func (c Corner) facesAway(d Direction) bool {
	var want uint8
	if d.Positive() {
		want = 1
	}
	return c.bit(d) != want
}
