// Package lang assembles, serializes and persists translation documents.
//
// A translation document maps a normalized device URN to per-language flat
// key tables: {urn: {lang: {key: description}}}. The flat tables come from
// the flatten package; this package wraps them in the document shape, writes
// them to disk as <urn>.json and records them in the SQLite catalog.
//
// Serialization is deterministic (JSON object keys sorted) and preserves
// non-ASCII description text literally, so generated files diff cleanly
// between runs.
package lang
