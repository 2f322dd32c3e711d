// Package flatten converts MIoT specification documents into flat
// translation-key mappings.
//
// A specification document describes a device as a tree of services,
// properties (optionally with enumerated value-lists), events, and actions.
// The flattener walks that tree and emits one key per entity:
//
//	service:002
//	service:002:property:001
//	service:002:property:001:valuelist:000
//	service:002:event:001
//	service:002:action:002
//
// mapped to the entity's human-readable description. Numeric ids are
// zero-padded to a configurable width (default 3); ids wider than the pad
// render at their natural width rather than being truncated.
//
// # Field variants
//
// Specification documents have drifted over schema revisions: the same
// concept appears under different field names (`description` vs `name`,
// `value-list` vs `valueList` vs `enum`, ...). Each semantic role is
// therefore resolved against an ordered candidate list (see resolver.go);
// adding a newly observed variant means extending a list, never touching
// the traversal.
//
// # Failure semantics
//
// The flattener is total: it never fails, whatever the document's shape.
// An entity without a usable id is skipped together with its descendants; a
// missing description yields an empty string under the entity's key; a
// document without a services list yields an empty mapping.
package flatten
