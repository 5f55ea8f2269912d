package quad

import (
	"bytes"
	"cmp"
	"errors"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

func buildDrawing(t *testing.T) (*Tree, Handle) {
	t.Helper()
	tr := NewTree()
	r := tr.NewRoot()

	style := Style{Width: 0.01, Color: RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff}}
	tr.RouteStroke(r, Pt(-0.75, 0), Pt(0.75, 0.125), 1, style, 0)
	tr.RouteStroke(r, Pt(0.375, 0.375), Pt(0.625, 0.625), 1, style, 1)
	tr.RouteStroke(r, Pt(-0.02, -0.02), Pt(0.02, 0.02), 1, style, 2)

	// A stroke in a neighboring cell so the blob spans a multi-node root
	// subtree with a nonempty center path.
	nb := tr.GetOrCreateNeighbor(r, PosX)
	tr.RouteStroke(nb, Pt(-0.6, 0.1), Pt(0.6, -0.1), 1, style, 3)
	return tr, r
}

func collectSorted(t *Tree, h Handle) []Placed {
	unit := Rect{MinX: -0.5, MinY: -0.5, MaxX: 0.5, MaxY: 0.5}
	out := t.Collect(t.Root(h), unit, nil)
	slices.SortStableFunc(out, func(a, b Placed) int {
		return cmp.Compare(a.Primitive.Order, b.Primitive.Order)
	})
	return out
}

func TestCodecRoundTrip(t *testing.T) {
	tr, center := buildDrawing(t)

	var buf bytes.Buffer
	if err := Encode(&buf, tr, center); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec, decCenter, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := dec.Corner(decCenter), tr.Corner(center); got != want {
		t.Errorf("decoded center corner = %v, want %v", got, want)
	}
	if diff := gocmp.Diff(collectSorted(tr, center), collectSorted(dec, decCenter)); diff != "" {
		t.Errorf("decoded drawing differs (-want +got):\n%s", diff)
	}
}

func TestCodecEncodeInvalidCenter(t *testing.T) {
	tr := NewTree()
	var buf bytes.Buffer
	if err := Encode(&buf, tr, Nil); err == nil {
		t.Error("Encode accepted an invalid center handle")
	}
}

func TestCodecDecodeRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrCorrupt},
		{"bad magic", []byte{0xde, 0xad, 0xbe, 0xef, 1, 0, 0}, ErrCorrupt},
		{"bad version", []byte{0x42, 0x43, 0x56, 0x31, 99, 0, 0}, ErrVersion},
		{"bad corner", []byte{0x42, 0x43, 0x56, 0x31, 1, 7, 0}, ErrCorrupt},
		{"truncated body", []byte{0x42, 0x43, 0x56, 0x31, 1, 0, 0}, ErrCorrupt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("Decode(%x) error = %v, want %v", tc.data, err, tc.want)
			}
		})
	}
}

func TestCodecDecodeTruncatedBlob(t *testing.T) {
	tr, center := buildDrawing(t)
	var buf bytes.Buffer
	if err := Encode(&buf, tr, center); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	blob := buf.Bytes()

	// Every proper prefix must fail cleanly.
	for cut := 0; cut < len(blob); cut += 7 {
		if _, _, err := Decode(bytes.NewReader(blob[:cut])); err == nil {
			t.Errorf("Decode accepted a blob truncated to %d of %d bytes", cut, len(blob))
		}
	}
}
