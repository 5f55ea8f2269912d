package quad

// Kind identifies the shape variant of a primitive. The set is closed:
// adding a shape means adding a constant here and teaching the codec and
// renderers about it.
type Kind uint8

const (
	// KindLine is a straight line segment between two endpoints.
	KindLine Kind = iota

	kindCount
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	default:
		return "Unknown"
	}
}

// Style describes the paint attributes the host attaches to new strokes.
// Width is given in the coordinate units of the window-depth cell the
// stroke is routed into.
type Style struct {
	Width float32
	Color RGBA
}

// Primitive is one immutable drawable shape stored in a node. Endpoints
// are in the owning node's local [-1,1]² frame, Width is already rescaled
// for the node's depth, and Order is the global paint-order tag assigned
// at creation. A primitive belongs to exactly one node for its whole life.
type Primitive struct {
	Kind           Kind
	X1, Y1, X2, Y2 float32
	Width          float32
	Color          RGBA
	Order          uint32
}

// NewLine builds a line primitive from endpoints in the target node's
// local frame. The style width is multiplied by scale, the accumulated
// depth factor of the routing descent, so the line keeps its intended
// weight relative to the cell it was drawn into.
func NewLine(p1, p2 Point, scale float32, style Style, order uint32) Primitive {
	return Primitive{
		Kind:  KindLine,
		X1:    p1.X,
		Y1:    p1.Y,
		X2:    p2.X,
		Y2:    p2.Y,
		Width: style.Width * scale,
		Color: style.Color,
		Order: order,
	}
}

// Placed pairs a primitive with the destination rectangle its node maps to
// in the current window. The render collaborator consumes these.
type Placed struct {
	Primitive Primitive
	Dest      Rect
}
