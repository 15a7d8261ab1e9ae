package isotrix

import "errors"

var (
	// ErrDegenerateGeometry is returned for empty polygons or trixel sets
	// where a centroid or decomposition is needed.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrUnknownResource is returned when an image cannot be resolved by name.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrLinkLockMismatch is returned when a portal is placed to complete a
	// link whose pending end has a different locked state.
	ErrLinkLockMismatch = errors.New("portal lock state does not match pending portal")
)
