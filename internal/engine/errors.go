package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when no engine can write the
	// requested output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrClosed is returned by an engine after Close while a conversion is
	// being set up.
	ErrClosed = errors.New("engine closed")

	// ErrEmptyInput is returned for zero-length input.
	ErrEmptyInput = errors.New("invalid image: empty input")

	// ErrEmptyOutput is returned when an engine produced no bytes.
	ErrEmptyOutput = errors.New("engine output invalid: empty result")
)

// InitError reports a failed engine initialization. Initialization is
// retried on the next conversion.
type InitError struct {
	Engine ID
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s engine: %v", e.Engine, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// IsInitError reports whether err came from engine initialization.
func IsInitError(err error) bool {
	var ie *InitError
	return errors.As(err, &ie)
}
