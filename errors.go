package paint

import "errors"

// Errors returned by structural layer-stack operations. These indicate
// caller bugs (precondition violations), not recoverable runtime states:
// no partial mutation has been applied when one of these is returned.
var (
	// ErrIndexOutOfRange is returned when a layer index does not refer to
	// an existing layer in the stack.
	ErrIndexOutOfRange = errors.New("paint: layer index out of range")

	// ErrInvalidOperation is returned when an operation's arguments are
	// structurally invalid, e.g. merging fewer than two layers or passing
	// duplicate indices to a merge.
	ErrInvalidOperation = errors.New("paint: invalid operation")

	// ErrLayerLocked is returned when a destructive operation targets a
	// locked layer.
	ErrLayerLocked = errors.New("paint: layer is locked")
)
