// Package metrics computes structural counts over an analyzed document:
// paths, operations, parameters, harvested schemas and the shape of the
// schema groups (reuse, directions and property counts).
//
//	report := metrics.Compute(doc, occurrences, groups)
//	fmt.Printf("%d groups, reuse %.2f\n", report.Groups, report.ReuseRatio)
//
// Empty inputs are valid and produce zero counts; ratios with a zero
// denominator are reported as zero.
package metrics
