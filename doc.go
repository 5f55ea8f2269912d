// Package boundless implements an unbounded zoomable drawing surface.
//
// # Overview
//
// A boundless canvas is an infinite plane the user draws line strokes on
// while panning and zooming without limit in either direction. Content is
// stored in a lazily materialized quadtree (package quad): every stroke
// lives in exactly one node, at the depth where its size matches the
// node's cell, so detail drawn at any magnification survives round trips
// through arbitrary zoom levels.
//
// The visible region is managed by a fixed N×N paging window (Buffer)
// holding handles to same-depth tree nodes. Panning rotates the window
// toroidally and materializes the entering edge; zooming swaps the whole
// window one tree level down or up. Nodes referenced by the window are
// pinned; everything that falls out of view and holds no content is
// reclaimed immediately.
//
// # Quick Start
//
//	import "github.com/gocanvas/boundless"
//
//	c, err := boundless.NewCanvas()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Draw, navigate, render.
//	c.Stroke(quad.Pt(-0.2, 0), quad.Pt(0.2, 0.1))
//	c.Pan(0.7, 0)
//	c.Zoom(1.5)
//	for _, p := range c.Visible() {
//		// feed p.Primitive at p.Dest to a renderer
//	}
//
// # Coordinate System
//
// The public surface works in window units: the window's center cell is
// the unit square around the origin, X increases right, Y increases down.
// One unit is one window cell regardless of how deep in the tree the
// window currently sits; the host maps screen pixels to window units
// using ZoomLevel and PanOffset.
//
// # Persistence
//
// Export writes the entire drawing as a compact binary blob; Import
// restores it all-or-nothing, leaving the canvas untouched on malformed
// input.
package boundless

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
