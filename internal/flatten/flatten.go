package flatten

import (
	"fmt"
	"sort"
)

// DefaultPadWidth is the zero-padding width used by published miot-spec
// documents (e.g. "service:002").
const DefaultPadWidth = 3

// Flattener converts specification documents into flat key-description
// mappings. The zero value is not usable; construct with New.
//
// Flatten is a pure transformation: it never mutates its input, holds no
// state between calls, and is safe for concurrent use.
type Flattener struct {
	padWidth int
}

// Options configures a Flattener.
type Options struct {
	// PadWidth is the zero-padding width for numeric ids in keys.
	// Values < 1 fall back to DefaultPadWidth. Ids that do not fit the
	// width render at their natural width - keys are never truncated.
	PadWidth int
}

// New creates a Flattener with the given options.
func New(opts Options) *Flattener {
	width := opts.PadWidth
	if width < 1 {
		width = DefaultPadWidth
	}
	return &Flattener{padWidth: width}
}

// Flatten walks the document's service list and returns one key-description
// pair per resolvable entity.
//
// Traversal follows document order: services as listed, and within each
// service its properties (each followed by its value-list entries), then
// events, then actions. A service, property, event, or action without a
// usable id contributes nothing, including its descendants; an entity with
// an id but no resolvable description is emitted with an empty string.
//
// The returned mapping is never nil. A document without a recognisable
// services sequence yields an empty mapping.
func (f *Flattener) Flatten(doc any) map[string]string {
	out := make(map[string]string)

	for _, svc := range findServices(doc) {
		siid, ok := resolveID(svc, serviceIDFields)
		if !ok {
			continue
		}
		serviceKey := fmt.Sprintf("service:%s", f.formatID(siid))
		out[serviceKey] = resolveDescription(svc)

		f.flattenProperties(out, serviceKey, svc)
		f.flattenSubEntities(out, serviceKey, svc, "events", "event", eventIDFields)
		f.flattenSubEntities(out, serviceKey, svc, "actions", "action", actionIDFields)
	}

	return out
}

// flattenProperties emits keys for a service's properties and their
// value-list entries.
func (f *Flattener) flattenProperties(out map[string]string, serviceKey string, svc map[string]any) {
	for _, prop := range recordList(svc["properties"]) {
		piid, ok := resolveID(prop, propertyIDFields)
		if !ok {
			continue
		}
		propertyKey := fmt.Sprintf("%s:property:%s", serviceKey, f.formatID(piid))
		out[propertyKey] = resolveDescription(prop)

		// Value-list entries are keyed by their 0-based position.
		for idx, entry := range resolveValueList(prop) {
			key := fmt.Sprintf("%s:valuelist:%s", propertyKey, f.formatID(int64(idx)))
			out[key] = resolveEntryDescription(entry)
		}
	}
}

// flattenSubEntities emits keys for a service's events or actions.
func (f *Flattener) flattenSubEntities(out map[string]string, serviceKey string, svc map[string]any, field, label string, idFields []string) {
	for _, entity := range recordList(svc[field]) {
		id, ok := resolveID(entity, idFields)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s:%s:%s", serviceKey, label, f.formatID(id))
		out[key] = resolveDescription(entity)
	}
}

// formatID renders an id as a fixed-width, zero-padded decimal string.
// Ids wider than the pad width render at natural width.
func (f *Flattener) formatID(id int64) string {
	return fmt.Sprintf("%0*d", f.padWidth, id)
}

// findServices locates the document's service list.
//
// The usual location is a top-level services field; failing that, the
// document is searched depth-first for the first sequence whose elements
// look like services (records carrying an siid or iid field). This covers
// wrapper shapes some mirrors of the spec registry produce.
func findServices(doc any) []map[string]any {
	if root, ok := doc.(map[string]any); ok {
		if v, found := resolveField(root, servicesFields); found {
			if list, isList := v.([]any); isList {
				return recordEntries(list)
			}
		}
	}

	if list := searchServiceList(doc); list != nil {
		return recordEntries(list)
	}
	return nil
}

// searchServiceList recursively looks for a list of service-like records.
func searchServiceList(node any) []any {
	switch val := node.(type) {
	case map[string]any:
		// Walk keys in sorted order: map iteration order is random, and
		// the search must pick the same list on every run.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := searchServiceList(val[k]); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range val {
			if record, ok := item.(map[string]any); ok {
				if _, hasSiid := record["siid"]; hasSiid {
					return val
				}
				if _, hasIid := record["iid"]; hasIid {
					return val
				}
			}
		}
		// Not a service list itself; descend into elements.
		for _, item := range val {
			if found := searchServiceList(item); found != nil {
				return found
			}
		}
	}
	return nil
}

// recordList coerces a value to a slice of records, dropping anything that
// is not a JSON object. Nil and non-sequence values yield nil.
func recordList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return recordEntries(list)
}

// recordEntries filters a sequence down to its record elements.
func recordEntries(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
