package geoplot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every argument validation failure.
	ErrInvalidArgument = errors.New("geoplot: invalid argument")

	// ErrRendering is matched by every failure of a rendering session.
	ErrRendering = errors.New("geoplot: rendering failed")

	// ErrSessionRunning is returned when Show or SaveFig is called while a
	// session is already running on the same Session.
	ErrSessionRunning = errors.New("geoplot: session already running")
)

// ArgumentError reports an out-of-range or malformed argument. The Session
// is left unchanged whenever one is returned.
type ArgumentError struct {
	Op     string // operation that rejected the argument, e.g. "SetMapAlpha"
	Arg    string // argument name
	Value  any    // offending value
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("geoplot: %s: invalid %s %v: %s", e.Op, e.Arg, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArg(op, arg string, value any, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Value: value, Reason: reason}
}

// RenderError is returned by Show and SaveFig when the rendering application
// could not be built, failed while running, or panicked.
type RenderError struct {
	Session string // session id
	Phase   string // "construct" or "run"
	Err     error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("geoplot: session %s: %s: %v", e.Session, e.Phase, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRendering.
func (e *RenderError) Is(target error) bool {
	return target == ErrRendering
}
