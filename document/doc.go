// Package document provides an order-preserving tree model for JSON and
// YAML API descriptions.
//
// Decoding into map[string]any loses the order in which paths, operations
// and status codes were declared. The types here keep it: an [Object]
// remembers its key order, so walking a document visits entries exactly as
// they appear in the source file.
//
// # Decoding
//
//	v, format, err := document.Decode(data)
//	root, ok := document.AsObject(v)
//
// JSON is read with a streaming token decoder and numbers are kept as their
// literal text. YAML anchors, aliases and merge keys are expanded. Mapping
// keys are always strings, so a YAML status code written as 200 becomes the
// key "200".
//
// # References
//
// [ResolveLocalRefs] inlines local "$ref" targets in place. Circular and
// external references are left as-is and reported as
// [oaserrors.ReferenceError] values.
package document
