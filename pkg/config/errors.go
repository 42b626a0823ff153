package config

import "errors"

var (
	// ErrNilPointer indicates a nil destination was passed to Load.
	ErrNilPointer = errors.New("config: nil pointer provided")

	// ErrParsingConfig indicates environment parsing failed.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)
