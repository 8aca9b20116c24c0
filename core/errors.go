package core

import "errors"

// Instantiation failure classes. Callers classify with errors.Is; the wrapped
// message carries the device name and the failing resource.
var (
	// ErrResourceUnavailable reports a register window that could not be mapped.
	ErrResourceUnavailable = errors.New("register window unavailable")

	// ErrDependencyUnavailable reports a clock or interrupt line that could
	// not be acquired or resolved.
	ErrDependencyUnavailable = errors.New("clock or interrupt unavailable")

	// ErrAlreadyActive reports an instantiation attempt for a mode that
	// already has a live instance.
	ErrAlreadyActive = errors.New("timer mode already active")

	// ErrInvalidMode reports an unrecognized compatible tag or an operation
	// issued in the wrong state.
	ErrInvalidMode = errors.New("invalid timer mode")
)
