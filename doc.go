// Package apistic analyzes API interface descriptions (OpenAPI 3.x and
// Swagger 2.0) to extract the data schemas used by request and response
// bodies, group structurally equivalent schemas together, and compute
// structural metrics over the result.
//
// # Overview
//
// The library is split into one package per stage of the analysis:
//
//   - parser: read a document from a file, reader or byte slice, detect its
//     format and OAS version, optionally inline local $ref pointers
//   - converter: normalize a document to OpenAPI 3, converting Swagger 2.0
//     on a best-effort basis
//   - harvester: walk every operation and collect one occurrence per
//     body-bearing response (and request)
//   - equivalence: decide whether two schema fragments are structurally
//     identical, ignoring descriptive keywords
//   - grouper: cluster occurrences into schema groups, first seen wins
//   - metrics: structural counts over the document and the groups
//   - analyzer: run the whole pipeline in one call
//
// # Quick Start
//
//	result, err := analyzer.AnalyzeWithOptions(
//		analyzer.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, g := range result.Groups {
//		fmt.Printf("%d endpoints share %s\n", len(g.Endpoints), g.Representative)
//	}
//
// The apistic command (cmd/apistic) wraps the analyzer for the terminal
// and, with "apistic mcp", serves it to MCP clients over stdio.
//
// Documents are kept as ordered JSON value trees (see the document package)
// so that the declaration order of paths, methods and status codes decides
// which schema becomes a group's representative.
package apistic
