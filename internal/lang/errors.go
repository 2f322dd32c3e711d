package lang

import "errors"

// Domain errors for the lang package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, lang.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrNotFound is returned when no stored translation matches the query.
	ErrNotFound = errors.New("lang: translation not found")

	// ErrEmptyURN is returned when a document is built or queried with an
	// empty URN.
	ErrEmptyURN = errors.New("lang: urn is empty")

	// ErrEmptyLang is returned when a document is built with an empty
	// language tag.
	ErrEmptyLang = errors.New("lang: language tag is empty")
)
