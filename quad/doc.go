// Package quad implements the spatial index behind the boundless canvas:
// a lazily materialized quadtree over an unbounded plane.
//
// Nodes live in an arena and are addressed by generation-tagged handles.
// Child links are strong; parent and same-depth neighbor links are weak
// and validated on every dereference, so a handle kept across a cleanup
// pass simply stops resolving. The package also provides the stroke
// router, which walks a segment down to the node whose cell matches its
// size, and the binary codec used for persistence.
package quad
