package quad

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Codec errors.
var (
	// ErrCorrupt indicates the blob is not a canvas snapshot or its
	// structure is malformed.
	ErrCorrupt = errors.New("quad: corrupt canvas data")

	// ErrVersion indicates a snapshot written by an unsupported format
	// version.
	ErrVersion = errors.New("quad: unsupported canvas data version")
)

const (
	// maxDecodeDepth bounds subtree recursion so a malformed blob cannot
	// exhaust the stack.
	maxDecodeDepth = 4096

	// maxDecodePath bounds the root-to-center corner path.
	maxDecodePath = 1 << 16
)

// Decode reconstructs a serialized subtree into a fresh arena and returns
// the tree together with the handle of the window-center node recorded in
// the blob. Any malformed input yields an error and no partial result;
// callers swap the returned tree in only on success.
func Decode(r io.Reader) (*Tree, Handle, error) {
	br := bufio.NewReader(r)

	var head [6]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, Nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if binary.BigEndian.Uint32(head[:4]) != codecMagic {
		return nil, Nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if head[4] != codecVersion {
		return nil, Nil, fmt.Errorf("%w: version %d", ErrVersion, head[4])
	}
	rootCorner, err := cornerFromByte(head[5])
	if err != nil {
		return nil, Nil, err
	}

	pathLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, Nil, fmt.Errorf("%w: path length", ErrCorrupt)
	}
	if pathLen > maxDecodePath {
		return nil, Nil, fmt.Errorf("%w: path length %d", ErrCorrupt, pathLen)
	}
	path := make([]Corner, pathLen)
	for i := range path {
		b, err := br.ReadByte()
		if err != nil {
			return nil, Nil, fmt.Errorf("%w: short path", ErrCorrupt)
		}
		if path[i], err = cornerFromByte(b); err != nil {
			return nil, Nil, err
		}
	}

	t := NewTree()
	root := t.alloc(rootCorner)
	if err := t.readNode(br, root, 0); err != nil {
		return nil, Nil, err
	}

	// Re-descend the recorded corner path to relocate the center node.
	center := root
	for _, c := range path {
		center = t.Child(center, c)
		if center == Nil {
			return nil, Nil, fmt.Errorf("%w: center path does not resolve", ErrCorrupt)
		}
	}
	return t, center, nil
}

// readNode decodes one node's primitives and children into h.
func (t *Tree) readNode(br *bufio.Reader, h Handle, depth int) error {
	if depth > maxDecodeDepth {
		return fmt.Errorf("%w: subtree deeper than %d", ErrCorrupt, maxDecodeDepth)
	}

	primCount, err := binary.ReadUvarint(br)
	if err != nil {
		return fmt.Errorf("%w: primitive count", ErrCorrupt)
	}
	for i := uint64(0); i < primCount; i++ {
		p, err := readPrimitive(br)
		if err != nil {
			return err
		}
		n := t.n(h)
		n.prims = append(n.prims, p)
	}

	mask, err := br.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: child mask", ErrCorrupt)
	}
	if mask > 0x0f {
		return fmt.Errorf("%w: child mask %#x", ErrCorrupt, mask)
	}
	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			if mask&(1<<(y<<1|x)) == 0 {
				continue
			}
			ch := t.GetOrCreateChild(h, Corner{X: x, Y: y})
			if err := t.readNode(br, ch, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func readPrimitive(br *bufio.Reader) (Primitive, error) {
	var raw [25]byte // kind + 5 float32 + rgba
	if _, err := io.ReadFull(br, raw[:]); err != nil {
		return Primitive{}, fmt.Errorf("%w: short primitive", ErrCorrupt)
	}
	kind := Kind(raw[0])
	if kind >= kindCount {
		return Primitive{}, fmt.Errorf("%w: primitive kind %d", ErrCorrupt, raw[0])
	}
	order, err := binary.ReadUvarint(br)
	if err != nil || order > math.MaxUint32 {
		return Primitive{}, fmt.Errorf("%w: primitive order", ErrCorrupt)
	}
	return Primitive{
		Kind:  kind,
		X1:    readFloat32(raw[1:]),
		Y1:    readFloat32(raw[5:]),
		X2:    readFloat32(raw[9:]),
		Y2:    readFloat32(raw[13:]),
		Width: readFloat32(raw[17:]),
		Color: RGBA{R: raw[21], G: raw[22], B: raw[23], A: raw[24]},
		Order: uint32(order),
	}, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func cornerFromByte(b byte) (Corner, error) {
	if b > 3 {
		return Corner{}, fmt.Errorf("%w: corner %#x", ErrCorrupt, b)
	}
	return Corner{X: b & 1, Y: b >> 1}, nil
}
