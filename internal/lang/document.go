package lang

import "strings"

// Document is a translation document: device URN to per-language flat key
// tables. In practice a generated document carries a single URN and a
// single language, but the shape allows merged catalogs.
type Document map[string]map[string]map[string]string

// NewDocument builds a single-URN, single-language translation document
// from a flat key table.
//
// Parameters:
//   - urn: Normalized device URN (must be non-empty)
//   - langTag: Language tag, e.g. "ru" or "en" (must be non-empty)
//   - flat: Flattened key table (nil is treated as empty)
//
// Returns:
//   - Document: The assembled document
//   - error: ErrEmptyURN or ErrEmptyLang
func NewDocument(urn, langTag string, flat map[string]string) (Document, error) {
	urn = strings.TrimSpace(urn)
	langTag = strings.TrimSpace(langTag)

	if urn == "" {
		return nil, ErrEmptyURN
	}
	if langTag == "" {
		return nil, ErrEmptyLang
	}
	if flat == nil {
		flat = map[string]string{}
	}

	return Document{
		urn: {langTag: flat},
	}, nil
}

// KeyCount returns the total number of translation keys across all URNs
// and languages in the document.
func (d Document) KeyCount() int {
	n := 0
	for _, langs := range d {
		for _, flat := range langs {
			n += len(flat)
		}
	}
	return n
}
