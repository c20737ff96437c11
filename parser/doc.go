// Package parser reads Swagger 2.0 and OpenAPI 3.x descriptions from files,
// URLs, readers or byte slices.
//
// Unlike a typed model, the result keeps the document as an
// order-preserving [document.Object]: paths, operations and status codes
// are visited in the order they were declared, which the grouping stage
// relies on.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithResolveRefs(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d paths, %d operations\n",
//	    result.Version, result.Stats.PathCount, result.Stats.OperationCount)
//
// # Reference Resolution
//
// With WithResolveRefs(true), local references (#/components/..., or
// #/definitions/...) are inlined. Circular and external references are left
// as $ref objects and reported in ParseResult.RefErrors and Warnings.
//
// # Validation
//
// WithValidateStructure(true) runs kin-openapi validation on OpenAPI 3.0
// input. Findings never fail the parse.
//
// # Logging
//
// Every apistic package accepts a [Logger]. [NopLogger] is the default and
// [SlogAdapter] wraps log/slog.
package parser
