package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads and decodes a specification instance document from a local
// file. Used for offline generation against a previously saved document.
//
// Parameters:
//   - path: Path to a JSON specification file
//
// Returns:
//   - any: Decoded JSON document (generic value tree)
//   - error: If the file cannot be read or is not valid JSON
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading specification file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return doc, nil
}
