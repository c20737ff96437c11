// Package equivalence decides whether two JSON Schema fragments describe
// the same payload shape.
//
// Annotation keywords (description, title, example, examples, deprecated,
// $comment, externalDocs and x- extensions) are skipped at every level.
// The walk knows which keywords hold sub-schemas, so a property that is
// itself named "description" still takes part in the comparison:
//
//   - properties, patternProperties, definitions, $defs and
//     dependentSchemas must have the same names, compared per name
//   - allOf, anyOf, oneOf and prefixItems are compared pairwise
//   - required and a list-valued type compare as sets
//   - everything else must be the same JSON value, ignoring key order
//
// The type keyword is compared before anything else, so fragments of
// different types are rejected without descending into them.
//
//	if equivalence.Equivalent(a, b) {
//	    // same group
//	}
//
// [Comparator.Compare] also reports where fragments differ. Keywords with a
// malformed value yield an *oaserrors.ComparisonError; [Equivalent] treats
// that as "not equivalent".
package equivalence
