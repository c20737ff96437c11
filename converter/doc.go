// Package converter brings API descriptions into OpenAPI 3 form before
// their schemas are harvested.
//
// # Normalizing
//
// [Normalizer.Normalize] returns OpenAPI 3.x documents unchanged and hands
// anything else to a [Converter]. It never fails: when conversion breaks,
// the converter's partial output (or the original input) is returned and
// the failure is recorded in [NormalizeResult.Err].
//
//	res := converter.Normalize(parsed.Document)
//	if res.Err != nil {
//	    log.Printf("lossy conversion (%s fallback): %v", res.Fallback, res.Err)
//	}
//	occurrences := harvester.Harvest(res.Document)
//
// # Default Converter
//
// [OAS2Converter] converts Swagger 2.0 to OpenAPI 3.0.3 with kin-openapi.
// Paths, operations, status codes and schema properties keep their source
// order. When the whole document cannot be converted, path items are
// converted one by one and the ones that succeed form the partial result.
//
// Issues are reported with three severities: Info (conversion choices),
// Warning (lossy conversions such as collectionFormat) and Critical (path
// items that were dropped).
package converter
