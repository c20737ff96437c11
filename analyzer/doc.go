// Package analyzer runs the whole schema analysis in one call: parse,
// normalize to OpenAPI 3, harvest body schemas, group equivalent schemas
// and compute metrics.
//
//	result, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, g := range result.Groups {
//	    fmt.Println(result.GroupNames[i], g.Endpoints)
//	}
//
// Local $ref pointers are inlined by default so that referenced and inline
// schemas compare equal. Only input and option errors are returned. A
// failed conversion is reported in [Result.ConversionErr] and the analysis
// continues on the fallback document.
package analyzer
