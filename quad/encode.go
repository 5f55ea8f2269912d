package quad

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Codec constants. The blob layout is: magic, version, the structural
// root's corner, the corner path from the root down to the window center,
// then the root subtree (primitives and children only; parent and
// neighbor links are never persisted, they are rebuilt on load).
const (
	codecMagic   uint32 = 0x42435631 // "BCV1"
	codecVersion byte   = 1
)

// Encode serializes the subtree reachable from the structural root above
// center, together with the corner path that leads from that root back
// down to center.
func Encode(w io.Writer, t *Tree, center Handle) error {
	if !t.Valid(center) {
		return fmt.Errorf("quad: encode: center handle does not resolve")
	}
	root := t.Root(center)

	// Corners from the root's child down to the center node.
	var path []Corner
	for h := center; h != root; h = t.Parent(h) {
		path = append(path, t.Corner(h))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	buf := make([]byte, 0, 256)
	buf = binary.BigEndian.AppendUint32(buf, codecMagic)
	buf = append(buf, codecVersion)
	buf = append(buf, cornerByte(t.Corner(root)))
	buf = binary.AppendUvarint(buf, uint64(len(path)))
	for _, c := range path {
		buf = append(buf, cornerByte(c))
	}
	buf = t.appendNode(buf, root)

	_, err := w.Write(buf)
	return err
}

// appendNode encodes one node and recurses into its children.
func (t *Tree) appendNode(buf []byte, h Handle) []byte {
	n := t.n(h)

	buf = binary.AppendUvarint(buf, uint64(len(n.prims)))
	for _, p := range n.prims {
		buf = append(buf, byte(p.Kind))
		buf = appendFloat32(buf, p.X1)
		buf = appendFloat32(buf, p.Y1)
		buf = appendFloat32(buf, p.X2)
		buf = appendFloat32(buf, p.Y2)
		buf = appendFloat32(buf, p.Width)
		buf = append(buf, p.Color.R, p.Color.G, p.Color.B, p.Color.A)
		buf = binary.AppendUvarint(buf, uint64(p.Order))
	}

	var mask byte
	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			if t.Child(h, Corner{X: x, Y: y}) != Nil {
				mask |= 1 << (y<<1 | x)
			}
		}
	}
	buf = append(buf, mask)

	for y := uint8(0); y <= 1; y++ {
		for x := uint8(0); x <= 1; x++ {
			ch := t.Child(h, Corner{X: x, Y: y})
			if ch == Nil {
				continue
			}
			buf = t.appendNode(buf, ch)
		}
	}
	return buf
}

func appendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}

func cornerByte(c Corner) byte {
	return c.Y<<1 | c.X
}
