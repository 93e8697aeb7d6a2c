package htmlcolor

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a zero-length value.
	ErrEmptyInput = errors.New("empty string supplied")
	// ErrTransparent is returned when the value is the keyword "transparent".
	ErrTransparent = errors.New("transparent is not a color")
)

// ParseError carries the rejected input alongside one of the error kinds above.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse legacy color %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
