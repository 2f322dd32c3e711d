package generator

import "errors"

var (
	// ErrEmptyURN is returned when a generation request has no URN.
	ErrEmptyURN = errors.New("generator: urn is required")

	// ErrLoadFailed is returned when the specification document cannot be
	// loaded from either source.
	ErrLoadFailed = errors.New("generator: specification load failed")

	// ErrInvalidRequest is returned when an MQTT request payload cannot be
	// parsed.
	ErrInvalidRequest = errors.New("generator: invalid request payload")
)
