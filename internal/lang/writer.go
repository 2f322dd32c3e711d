package lang

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
)

// Writer serializes translation documents to JSON files.
type Writer struct {
	dir    string
	indent string
}

// NewWriter creates a Writer from output configuration.
func NewWriter(cfg config.OutputConfig) *Writer {
	indent := cfg.Indent
	if indent <= 0 {
		indent = 4
	}
	return &Writer{
		dir:    cfg.Dir,
		indent: strings.Repeat(" ", indent),
	}
}

// Write serializes a document and writes it to path. When path is empty the
// file is named <urn>.json in the configured output directory, using the
// document's single URN.
//
// HTML escaping is disabled so non-ASCII description text (Chinese names,
// Cyrillic translations) is written literally. Object keys are sorted, so
// output is byte-stable for a given document.
//
// Parameters:
//   - doc: Translation document to write
//   - path: Explicit output path, or "" for the default
//
// Returns:
//   - string: The path actually written
//   - error: If the document is empty or the file cannot be written
func (w *Writer) Write(doc Document, path string) (string, error) {
	if path == "" {
		urn, err := singleURN(doc)
		if err != nil {
			return "", err
		}
		path = filepath.Join(w.dir, urn+".json")
	}

	data, err := w.Marshal(doc)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing translation file: %w", err)
	}

	return path, nil
}

// Marshal serializes a document to indented JSON with HTML escaping
// disabled and a trailing newline.
func (w *Writer) Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", w.indent)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding translation document: %w", err)
	}
	return buf.Bytes(), nil
}

// singleURN returns the document's only URN. Default file naming requires
// exactly one.
func singleURN(doc Document) (string, error) {
	if len(doc) == 0 {
		return "", ErrEmptyURN
	}
	if len(doc) > 1 {
		return "", fmt.Errorf("default naming needs exactly one urn, document has %d", len(doc))
	}
	for urn := range doc {
		return urn, nil
	}
	return "", ErrEmptyURN
}
