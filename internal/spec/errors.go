package spec

import "errors"

var (
	// ErrEmptyURN indicates a fetch or load was attempted with an empty URN.
	ErrEmptyURN = errors.New("urn is empty")

	// ErrFetchFailed indicates the HTTP request to the registry could not
	// be completed.
	ErrFetchFailed = errors.New("specification fetch failed")

	// ErrUnexpectedStatus indicates the registry answered with a non-200
	// status code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidDocument indicates the response body was not valid JSON.
	ErrInvalidDocument = errors.New("invalid specification document")
)
