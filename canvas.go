package boundless

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/gocanvas/boundless/quad"
)

// options holds the configurable state of a Canvas.
type options struct {
	windowSize int
	style      quad.Style
}

// Option configures a Canvas at creation time.
type Option func(*options)

// WithWindowSize sets the viewport window dimension. The value must be odd
// and at least 3; anything else falls back to DefaultWindowSize.
func WithWindowSize(n int) Option {
	return func(o *options) {
		o.windowSize = n
	}
}

// WithStyle sets the initial stroke style.
func WithStyle(s quad.Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// Canvas is the drawing surface facade: an unbounded zoomable plane backed
// by a quadtree and viewed through a fixed-size paging window.
//
// All coordinates on the public surface are in window units: the cell at
// window position (x, y) covers the square [x-0.5, x+0.5] × [y-0.5, y+0.5],
// so the window center cell is the unit square around the origin. The host
// composes its own screen transform from ZoomLevel and PanOffset.
//
// A Canvas is not safe for concurrent use; it models a surface driven by
// one interaction event at a time.
type Canvas struct {
	tree  *quad.Tree
	buf   *Buffer
	style quad.Style

	// zoom accumulates scale factors between window remaps; it is folded
	// back toward 1 by descending or ascending a tree level whenever it
	// leaves (0.5, 2).
	zoom       float32
	panX, panY float32

	order uint32
}

// NewCanvas creates a canvas with a single root cell at the window center
// and the rest of the window materialized around it.
func NewCanvas(opts ...Option) (*Canvas, error) {
	o := options{
		windowSize: DefaultWindowSize,
		style:      quad.Style{Width: 0.01, Color: quad.RGBA{A: 0xff}},
	}
	for _, opt := range opts {
		opt(&o)
	}

	tree := quad.NewTree()
	buf := NewBuffer(tree, o.windowSize)
	if err := buf.Set(0, 0, tree.NewRoot()); err != nil {
		return nil, err
	}
	if err := buf.LoadAll(); err != nil {
		return nil, err
	}
	return &Canvas{
		tree:  tree,
		buf:   buf,
		style: o.style,
		zoom:  1,
	}, nil
}

// SetStyle changes the style applied to subsequent strokes.
func (c *Canvas) SetStyle(s quad.Style) {
	c.style = s
}

// Style returns the current stroke style.
func (c *Canvas) Style() quad.Style {
	return c.style
}

// ZoomLevel returns the accumulated zoom factor, always in (0.5, 2).
func (c *Canvas) ZoomLevel() float32 {
	return c.zoom
}

// PanOffset returns the viewpoint's fractional offset from the window
// center, in window units. Each component stays within [-0.5, 0.5].
func (c *Canvas) PanOffset() (float32, float32) {
	return c.panX, c.panY
}

// WindowSize returns the window dimension N.
func (c *Canvas) WindowSize() int {
	return c.buf.Size()
}

// Stroke records a line segment given in window units. The segment is
// routed into the cell containing its midpoint and descends from there to
// the depth matching its size. Segments whose midpoint falls outside the
// window are rejected with ErrCoordRange.
func (c *Canvas) Stroke(p1, p2 quad.Point) error {
	mid := p1.Mid(p2)
	cx := roundToCell(mid.X)
	cy := roundToCell(mid.Y)
	if !c.buf.InRange(cx, cy) {
		return fmt.Errorf("%w: stroke midpoint (%g,%g)", ErrCoordRange, mid.X, mid.Y)
	}
	h := c.buf.Get(cx, cy)
	if h == quad.Nil {
		if err := c.buf.LoadAll(); err != nil {
			return err
		}
		if h = c.buf.Get(cx, cy); h == quad.Nil {
			return fmt.Errorf("%w: window cell (%d,%d) empty after load", ErrInternal, cx, cy)
		}
	}
	// Window units to the cell's local [-1,1] frame.
	l1 := quad.Pt((p1.X-float32(cx))*2, (p1.Y-float32(cy))*2)
	l2 := quad.Pt((p2.X-float32(cx))*2, (p2.Y-float32(cy))*2)
	c.tree.RouteStroke(h, l1, l2, 1, c.style, c.nextOrder())
	return nil
}

// Pan moves the viewpoint by (dx, dy) window units. Whole-cell crossings
// turn into window shifts; the fractional remainder accumulates in
// PanOffset.
func (c *Canvas) Pan(dx, dy float32) error {
	c.panX += dx
	c.panY += dy
	for c.panX > 0.5 {
		c.buf.ShiftPosX()
		c.panX--
	}
	for c.panX < -0.5 {
		c.buf.ShiftNegX()
		c.panX++
	}
	for c.panY > 0.5 {
		c.buf.ShiftPosY()
		c.panY--
	}
	for c.panY < -0.5 {
		c.buf.ShiftNegY()
		c.panY++
	}
	return c.buf.LoadAll()
}

// Zoom multiplies the accumulated zoom by factor. When the accumulation
// reaches 2 the window descends one tree level toward the quadrant the
// viewpoint leans into; at 0.5 it ascends one level. Factors that are not
// positive are ignored.
func (c *Canvas) Zoom(factor float32) error {
	if factor <= 0 {
		return nil
	}
	c.zoom *= factor
	for c.zoom >= 2 {
		cr := quad.Corner{}
		if c.panX > 0 {
			cr.X = 1
		}
		if c.panY > 0 {
			cr.Y = 1
		}
		c.buf.ZoomIn(cr)
		c.panX = 2*c.panX - (float32(cr.X) - 0.5)
		c.panY = 2*c.panY - (float32(cr.Y) - 0.5)
		c.zoom /= 2
		Logger().Debug("window descended one level",
			"cornerX", cr.X, "cornerY", cr.Y, "zoom", c.zoom)
	}
	for c.zoom <= 0.5 {
		center := c.buf.Get(0, 0)
		if center == quad.Nil {
			return fmt.Errorf("%w: empty center cell during zoom out", ErrInternal)
		}
		cr := c.tree.Corner(center)
		c.buf.ZoomOut()
		c.panX = (c.panX + float32(cr.X) - 0.5) / 2
		c.panY = (c.panY + float32(cr.Y) - 0.5) / 2
		c.zoom *= 2
	}
	return c.buf.LoadAll()
}

// Visible collects every primitive reachable from the window, each paired
// with its destination rectangle in window units, sorted by paint order.
func (c *Canvas) Visible() []quad.Placed {
	var out []quad.Placed
	for _, cell := range c.buf.Cells() {
		dest := quad.Rect{
			MinX: float32(cell.X) - 0.5,
			MinY: float32(cell.Y) - 0.5,
			MaxX: float32(cell.X) + 0.5,
			MaxY: float32(cell.Y) + 0.5,
		}
		out = c.tree.Collect(cell.Node, dest, out)
	}
	slices.SortStableFunc(out, func(a, b quad.Placed) int {
		return cmp.Compare(a.Primitive.Order, b.Primitive.Order)
	})
	return out
}

// Export serializes the whole drawing to w. The blob records the subtree
// from the structural root above the window center plus the path back down
// to the center, so Import restores the same view.
func (c *Canvas) Export(w io.Writer) error {
	center := c.buf.Get(0, 0)
	if center == quad.Nil {
		return fmt.Errorf("%w: missing center cell during serialization", ErrInternal)
	}
	return quad.Encode(w, c.tree, center)
}

// Import replaces the canvas contents with a previously exported drawing.
// Zoom and pan reset to their initial values and paint order continues
// after the highest imported tag. On any decode failure the canvas is left
// exactly as it was.
func (c *Canvas) Import(r io.Reader) error {
	tree, center, err := quad.Decode(r)
	if err != nil {
		return err
	}
	buf := NewBuffer(tree, c.buf.Size())
	if err := buf.Set(0, 0, center); err != nil {
		return err
	}
	if err := buf.LoadAll(); err != nil {
		return err
	}

	var maxOrder uint32
	var prims int
	tree.Walk(tree.Root(center), func(h quad.Handle) {
		for _, p := range tree.Primitives(h) {
			prims++
			if p.Order > maxOrder {
				maxOrder = p.Order
			}
		}
	})

	c.tree = tree
	c.buf = buf
	c.zoom = 1
	c.panX, c.panY = 0, 0
	c.order = 0
	if prims > 0 {
		c.order = maxOrder + 1
	}
	Logger().Debug("canvas imported", "nodes", tree.Len(), "primitives", prims)
	return nil
}

// nextOrder hands out the strictly increasing paint-order tag.
func (c *Canvas) nextOrder() uint32 {
	o := c.order
	c.order++
	return o
}

// roundToCell maps a window coordinate to the containing cell index. Cell
// boundaries at half-integers round toward positive, matching the router's
// midpoint tie-break.
func roundToCell(v float32) int {
	return floorDiv(int(floor32(v*2))+1, 2)
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && v != i {
		i--
	}
	return i
}
