package transform

import "errors"

var (
	// ErrUnsupportedType is returned when a transformation carries a Type the
	// executor does not know.
	ErrUnsupportedType = errors.New("unsupported transformation type")

	// ErrUnsupportedOperation is returned when a transformation's Operation
	// is not valid for its Type.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMissingField is returned when a transformation lacks a field its
	// Type requires.
	ErrMissingField = errors.New("missing required transformation field")

	// ErrInvalidInput is returned when the payload shape does not match what
	// the transformation requires (e.g. loop over a non-array).
	ErrInvalidInput = errors.New("invalid input for transformation")
)
