package boundless

import "errors"

// ErrInternal marks a violated internal contract: an unresolved window
// cell after loading, a missing center cell during serialization, and the
// like. These abort the in-progress operation but are reported as errors
// rather than terminating the process.
var ErrInternal = errors.New("boundless: internal invariant violation")

// ErrCoordRange indicates a window coordinate outside [-N/2, N/2].
var ErrCoordRange = errors.New("boundless: window coordinate out of range")
