package boundless

import (
	"fmt"

	"github.com/gocanvas/boundless/quad"
)

// DefaultWindowSize is the window dimension used when none is configured.
const DefaultWindowSize = 5

// Buffer is the viewport paging window: a fixed N×N toroidal array of
// node handles representing the currently relevant depth-uniform slice of
// the tree. N is odd; cells are addressed by signed coordinates in
// [-N/2, N/2], mapped through a per-axis rotation offset so that panning
// is a pair of offset bumps instead of a copy.
//
// The buffer pins every occupant in the arena. Eviction unpins the node
// and runs cleanup on it, which is the only way nodes are ever destroyed.
type Buffer struct {
	tree *quad.Tree
	n    int
	half int
	data []quad.Handle // row-major over physical [x][y]
	offX int
	offY int
}

// Cell is one occupied window cell.
type Cell struct {
	X, Y int
	Node quad.Handle
}

// NewBuffer creates an empty window over the given tree. Sizes that are
// even or smaller than 3 are replaced by DefaultWindowSize.
func NewBuffer(tree *quad.Tree, n int) *Buffer {
	if n < 3 || n%2 == 0 {
		n = DefaultWindowSize
	}
	return &Buffer{
		tree: tree,
		n:    n,
		half: n / 2,
		data: make([]quad.Handle, n*n),
	}
}

// Size returns the window dimension N.
func (b *Buffer) Size() int {
	return b.n
}

// Half returns N/2, the largest addressable coordinate magnitude.
func (b *Buffer) Half() int {
	return b.half
}

// InRange reports whether (x, y) addresses a window cell.
func (b *Buffer) InRange(x, y int) bool {
	return x >= -b.half && x <= b.half && y >= -b.half && y <= b.half
}

// Get returns the occupant of cell (x, y), or quad.Nil when the cell is
// empty or the coordinate is out of range.
func (b *Buffer) Get(x, y int) quad.Handle {
	if !b.InRange(x, y) {
		return quad.Nil
	}
	h := b.data[b.idx(x, y)]
	if !b.tree.Valid(h) {
		return quad.Nil
	}
	return h
}

// Set installs a node in cell (x, y), evicting and cleaning up any
// previous occupant. Setting quad.Nil is equivalent to Clear.
func (b *Buffer) Set(x, y int, h quad.Handle) error {
	if !b.InRange(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrCoordRange, x, y)
	}
	b.clear(x, y)
	if h != quad.Nil {
		b.set(x, y, h)
	}
	return nil
}

// Clear evicts cell (x, y), running cleanup on the occupant.
func (b *Buffer) Clear(x, y int) error {
	if !b.InRange(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrCoordRange, x, y)
	}
	b.clear(x, y)
	return nil
}

// ClearAll evicts every cell.
func (b *Buffer) ClearAll() {
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			b.clear(x, y)
		}
	}
}

// Cells returns all occupied cells in ascending (x, y) order.
func (b *Buffer) Cells() []Cell {
	cells := make([]Cell, 0, b.n*b.n)
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			if h := b.Get(x, y); h != quad.Nil {
				cells = append(cells, Cell{X: x, Y: y, Node: h})
			}
		}
	}
	return cells
}

// ShiftPosX advances the window one cell in +X: Get(x, y) afterwards
// returns what Get(x+1, y) returned before, and the column that rotates
// back in on the +X edge is evicted. One call per unit of pan crossed;
// repeated calls compose.
func (b *Buffer) ShiftPosX() {
	b.offX = (b.offX + 1) % b.n
	for y := -b.half; y <= b.half; y++ {
		b.clear(b.half, y)
	}
}

// ShiftNegX advances the window one cell in -X.
func (b *Buffer) ShiftNegX() {
	b.offX = (b.offX + b.n - 1) % b.n
	for y := -b.half; y <= b.half; y++ {
		b.clear(-b.half, y)
	}
}

// ShiftPosY advances the window one cell in +Y.
func (b *Buffer) ShiftPosY() {
	b.offY = (b.offY + 1) % b.n
	for x := -b.half; x <= b.half; x++ {
		b.clear(x, b.half)
	}
}

// ShiftNegY advances the window one cell in -Y.
func (b *Buffer) ShiftNegY() {
	b.offY = (b.offY + b.n - 1) % b.n
	for x := -b.half; x <= b.half; x++ {
		b.clear(x, -b.half)
	}
}

// ZoomIn replaces every occupant with its child toward the given corner,
// reprojecting cell coordinates into the finer grid. The previous
// occupants are evicted; cells whose source falls outside the window stay
// empty until the next LoadAll.
func (b *Buffer) ZoomIn(c quad.Corner) {
	newData := make([]quad.Handle, b.n*b.n)
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			src := b.Get(floorDiv(x+int(c.X), 2), floorDiv(y+int(c.Y), 2))
			if src == quad.Nil {
				continue
			}
			cc := quad.Corner{
				X: uint8(posMod(x+int(c.X), 2)),
				Y: uint8(posMod(y+int(c.Y), 2)),
			}
			newData[b.rawIdx(x, y)] = b.tree.GetOrCreateChild(src, cc)
		}
	}
	b.swap(newData)
}

// ZoomOut replaces every occupant with its (lazily created) parent on the
// coarser grid. Several cells may collapse to the same parent; the first
// one encountered per resulting grid coordinate wins. Alignment is
// anchored at the center cell's corner so the center node's parent lands
// back at the center.
func (b *Buffer) ZoomOut() {
	b0x, b0y, ok := b.alignment()
	if !ok {
		return
	}
	newData := make([]quad.Handle, b.n*b.n)
	seen := make(map[[2]int]bool)
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			h := b.Get(x, y)
			if h == quad.Nil {
				continue
			}
			cr := b.tree.Corner(h)
			px := (x - int(cr.X) + b0x) / 2
			py := (y - int(cr.Y) + b0y) / 2
			if !b.InRange(px, py) || seen[[2]int{px, py}] {
				continue
			}
			seen[[2]int{px, py}] = true
			newData[b.rawIdx(px, py)] = b.tree.GetOrCreateParent(h)
		}
	}
	b.swap(newData)
}

// alignment derives the corner parity of the window's grid from the
// center occupant, falling back to any occupied cell.
func (b *Buffer) alignment() (int, int, bool) {
	if h := b.Get(0, 0); h != quad.Nil {
		c := b.tree.Corner(h)
		return int(c.X), int(c.Y), true
	}
	for _, cell := range b.Cells() {
		c := b.tree.Corner(cell.Node)
		return posMod(int(c.X)-cell.X, 2), posMod(int(c.Y)-cell.Y, 2), true
	}
	return 0, 0, false
}

// LoadAll fills every empty cell by deriving it from an occupied one via
// GetOrCreateNeighbor: first sweeping from the (-,-) corner anchoring on
// the cell to the left or above, then from the (+,+) corner anchoring on
// the cell to the right or below. A cell that neither sweep can resolve
// is an internal invariant violation, unreachable as long as at least
// one cell is populated.
func (b *Buffer) LoadAll() error {
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			if b.Get(x, y) != quad.Nil {
				continue
			}
			if left := b.Get(x-1, y); left != quad.Nil {
				b.set(x, y, b.tree.GetOrCreateNeighbor(left, quad.PosX))
				continue
			}
			if above := b.Get(x, y-1); above != quad.Nil {
				b.set(x, y, b.tree.GetOrCreateNeighbor(above, quad.PosY))
			}
		}
	}
	for xi := -b.half; xi <= b.half; xi++ {
		for yi := -b.half; yi <= b.half; yi++ {
			x, y := -xi, -yi
			if b.Get(x, y) != quad.Nil {
				continue
			}
			if right := b.Get(x+1, y); right != quad.Nil {
				b.set(x, y, b.tree.GetOrCreateNeighbor(right, quad.NegX))
				continue
			}
			if below := b.Get(x, y+1); below != quad.Nil {
				b.set(x, y, b.tree.GetOrCreateNeighbor(below, quad.NegY))
				continue
			}
			return fmt.Errorf("%w: window cell (%d,%d) unresolved", ErrInternal, x, y)
		}
	}
	return nil
}

// set stores and pins without range checking or eviction.
func (b *Buffer) set(x, y int, h quad.Handle) {
	b.tree.Pin(h)
	b.data[b.idx(x, y)] = h
}

// clear evicts without range checking: unpin, cleanup, empty the slot.
func (b *Buffer) clear(x, y int) {
	i := b.idx(x, y)
	if h := b.data[i]; h != quad.Nil {
		b.tree.Unpin(h)
		b.tree.TryCleanup(h)
		b.data[i] = quad.Nil
	}
}

// swap installs a freshly computed window: pin the new occupants first so
// the eviction pass cannot cascade into them, then evict everything old.
func (b *Buffer) swap(newData []quad.Handle) {
	for _, h := range newData {
		if h != quad.Nil {
			b.tree.Pin(h)
		}
	}
	old := b.data
	b.data = newData
	b.offX, b.offY = 0, 0
	for _, h := range old {
		if h != quad.Nil {
			b.tree.Unpin(h)
			b.tree.TryCleanup(h)
		}
	}
}

// idx maps a signed logical coordinate through the rotation offsets to a
// physical slot. Every cell's physical position is (coord + offset) mod N.
func (b *Buffer) idx(x, y int) int {
	px := (x + b.half + b.offX) % b.n
	py := (y + b.half + b.offY) % b.n
	return px*b.n + py
}

// rawIdx maps a signed coordinate with zero offsets; used when building a
// replacement window.
func (b *Buffer) rawIdx(x, y int) int {
	return (x+b.half)*b.n + (y + b.half)
}

func posMod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func floorDiv(v, d int) int {
	q := v / d
	if v%d != 0 && (v < 0) != (d < 0) {
		q--
	}
	return q
}
