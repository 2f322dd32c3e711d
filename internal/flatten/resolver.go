package flatten

import (
	"sort"
	"strconv"
	"strings"
)

// Field-name variants per semantic role, in resolution priority order.
// These are data, not code: a newly observed schema variant is added here
// and the traversal picks it up unchanged.
var (
	// descriptionFields are the top-level fields that may carry an entity's
	// human-readable description.
	descriptionFields = []string{"description", "name", "title", "desc", "display-name"}

	// descriptionLangFields are tried, in order, when a description field
	// holds a language map instead of a plain string.
	descriptionLangFields = []string{"en", "zh", "zh-CN", "cn", "default"}

	// valueListFields are the fields a property's enumerated value-list may
	// be stored under.
	valueListFields = []string{"value-list", "value_list", "valueList", "valuelist", "enum", "values"}

	// valueEntryFields are the per-entry description fields within a
	// value-list entry.
	valueEntryFields = []string{"description", "name", "value"}

	// servicesFields are the well-known locations of the services sequence.
	servicesFields = []string{"services", "service", "specServices"}

	// Id fallback chains. The entity-specific field is preferred; older
	// documents use the generic "iid" or "id".
	serviceIDFields  = []string{"siid", "iid", "id"}
	propertyIDFields = []string{"piid", "iid", "id"}
	eventIDFields    = []string{"eiid", "iid", "id"}
	actionIDFields   = []string{"aiid", "iid", "id"}
)

// resolveField returns the value stored under the first candidate field
// present in the record. Absence is an expected condition, not an error.
func resolveField(record map[string]any, candidates []string) (any, bool) {
	for _, field := range candidates {
		if v, ok := record[field]; ok {
			return v, true
		}
	}
	return nil, false
}

// resolveDescription extracts a human-readable description from an entity
// record. It tries each description field variant in order; a field holding
// a language map resolves to the first non-empty well-known language entry,
// falling back to any string value in the map. Returns "" when no variant
// yields a non-empty string.
func resolveDescription(record map[string]any) string {
	for _, field := range descriptionFields {
		v, ok := record[field]
		if !ok {
			continue
		}
		if s := descriptionString(v); s != "" {
			return s
		}
	}
	return ""
}

// descriptionString coerces a description value to a string.
func descriptionString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		// Language-keyed description object
		for _, lang := range descriptionLangFields {
			if s, ok := val[lang].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		// Fallback: first string value in key order
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := val[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// resolveEntryDescription extracts the description of a single value-list
// entry. Entries may be bare strings or records using any of the per-entry
// field variants.
func resolveEntryDescription(entry any) string {
	switch val := entry.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		for _, field := range valueEntryFields {
			if s := descriptionString(val[field]); s != "" {
				return s
			}
		}
	}
	return ""
}

// resolveValueList returns a property's enumerated value-list, or nil when
// the property has none (or it is not a sequence).
func resolveValueList(property map[string]any) []any {
	v, ok := resolveField(property, valueListFields)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return list
}

// resolveID extracts a numeric entity id using the given fallback chain.
// JSON numbers arrive as float64; numeric strings also count. A missing or
// non-numeric id returns ok=false, which skips the entity.
func resolveID(record map[string]any, candidates []string) (int64, bool) {
	v, ok := resolveField(record, candidates)
	if !ok {
		return 0, false
	}

	var n int64
	switch id := v.(type) {
	case float64:
		// Reject fractional ids; entity indices are integers.
		if id != float64(int64(id)) {
			return 0, false
		}
		n = int64(id)
	case int:
		n = int64(id)
	case int64:
		n = id
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if n < 0 {
		return 0, false
	}
	return n, true
}
