package quad

// Handle addresses a node in a Tree. Handles are generation-tagged: a
// handle kept across a cleanup pass that freed its node stops validating
// instead of resolving to whatever reuses the slot. The zero Handle (Nil)
// never addresses a node.
type Handle struct {
	idx uint32
	gen uint32
}

// Nil is the absent handle.
var Nil Handle

// node is one square cell of the plane at some recursion depth. Children
// are strong links; parent and the two same-depth neighbor links are weak
// and must be validated on every dereference.
type node struct {
	gen      uint32
	parent   Handle
	children [2][2]Handle // indexed [cornerY][cornerX]
	corner   Corner
	hNbr     Handle // same-depth neighbor on the horizontal axis
	vNbr     Handle // same-depth neighbor on the vertical axis
	prims    []Primitive
	pins     uint32
}

// Tree is an arena of quadtree nodes. All structural operations are
// methods on the tree; nodes are only ever referred to by Handle.
//
// The tree is single-threaded: every mutation is driven by one input
// event at a time, matching the interaction model of the surrounding
// canvas.
type Tree struct {
	nodes []node
	free  []uint32
	live  int
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{
		nodes: make([]node, 0, 64),
	}
}

// NewRoot allocates a parentless node to serve as a structural root.
func (t *Tree) NewRoot() Handle {
	return t.alloc(Corner{})
}

// Valid reports whether h currently addresses a live node.
func (t *Tree) Valid(h Handle) bool {
	return h.gen != 0 && int(h.idx) < len(t.nodes) && t.nodes[h.idx].gen == h.gen
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.live
}

// Corner returns the node's quadrant position within its parent.
func (t *Tree) Corner(h Handle) Corner {
	return t.n(h).corner
}

// Parent returns the node's parent, or Nil if absent or already pruned.
func (t *Tree) Parent(h Handle) Handle {
	p := t.n(h).parent
	if !t.Valid(p) {
		return Nil
	}
	return p
}

// Child returns the child at the given corner, or Nil if absent.
func (t *Tree) Child(h Handle, c Corner) Handle {
	ch := t.n(h).children[c.Y][c.X]
	if !t.Valid(ch) {
		return Nil
	}
	return ch
}

// Primitives returns the node's primitive list. The slice is owned by the
// tree and must not be modified.
func (t *Tree) Primitives(h Handle) []Primitive {
	return t.n(h).prims
}

// Pin marks the node as externally held. A pinned node is never freed by
// TryCleanup; the viewport window pins every occupant.
func (t *Tree) Pin(h Handle) {
	if t.Valid(h) {
		t.n(h).pins++
	}
}

// Unpin releases one external hold on the node.
func (t *Tree) Unpin(h Handle) {
	if t.Valid(h) && t.n(h).pins > 0 {
		t.n(h).pins--
	}
}

// n resolves a handle to its node storage. Callers must hold a handle that
// is either freshly produced by the tree or already validated; the pointer
// must not be kept across any call that may allocate.
func (t *Tree) n(h Handle) *node {
	return &t.nodes[h.idx]
}

// alloc creates a live node with the given corner, reusing a freed slot
// when one is available.
func (t *Tree) alloc(c Corner) Handle {
	t.live++
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		n := &t.nodes[idx]
		gen := n.gen
		*n = node{gen: gen, corner: c}
		return Handle{idx: idx, gen: gen}
	}
	t.nodes = append(t.nodes, node{gen: 1, corner: c})
	//nolint:gosec // arena length is bounded by live node count
	idx := uint32(len(t.nodes) - 1)
	return Handle{idx: idx, gen: 1}
}

// release frees a node and invalidates all outstanding handles to it by
// bumping the slot generation.
func (t *Tree) release(h Handle) {
	n := t.n(h)
	*n = node{gen: n.gen + 1}
	t.free = append(t.free, h.idx)
	t.live--
}
