package analyzer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/souhailaS/apistic/converter"
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/metrics"
	"github.com/souhailaS/apistic/parser"
)

// Result is the outcome of one analysis run.
type Result struct {
	// RunID identifies the run in logs and cached results.
	RunID string
	// SourcePath is the file, URL or synthetic name of the input.
	SourcePath string
	// SourceVersion is the version marker of the input document.
	SourceVersion string
	// Version is the version marker of the analyzed document after
	// normalization.
	Version string
	// Converted is true when the input was converted to OpenAPI 3.
	Converted bool
	// Fallback tells which document was used when conversion failed.
	Fallback converter.Fallback
	// ConversionErr is the conversion failure, if any. The analysis still
	// runs on the fallback document.
	ConversionErr error
	// ConversionIssues are the notes reported by the converter.
	ConversionIssues []converter.ConversionIssue
	// Document is the normalized document the schemas were harvested from.
	Document *document.Object
	// Occurrences are the harvested body schema sites, in document order.
	Occurrences []harvester.Occurrence
	// Groups are the schema groups in creation order.
	Groups []*grouper.SchemaGroup
	// GroupNames holds a suggested display name per group, aligned with Groups.
	GroupNames []string
	// Metrics are the structural counts of the run.
	Metrics metrics.Report
	// Warnings collects non-fatal parser findings.
	Warnings []string
	// Duration is the wall time of the run, parsing included.
	Duration time.Duration
}

// AnalyzeWithOptions parses, normalizes, harvests and groups a document.
// Only input and option errors are returned; conversion and comparison
// failures degrade the result instead.
//
//	result, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.yaml"),
//	    analyzer.WithConcurrency(4),
//	)
func AnalyzeWithOptions(opts ...Option) (*Result, error) {
	start := time.Now()
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: invalid options: %w", err)
	}

	parsed, err := cfg.parse()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:         uuid.NewString(),
		SourcePath:    parsed.SourcePath,
		SourceVersion: parsed.Version,
		Warnings:      parsed.Warnings,
	}
	log := cfg.logger.With("run", res.RunID)
	log.Debug("analyzer: parsed", "source", parsed.SourcePath, "version", parsed.Version)

	normOpts := []converter.Option{converter.WithLogger(log)}
	if cfg.converter != nil {
		normOpts = append(normOpts, converter.WithConverter(cfg.converter))
	}
	norm, err := converter.NewNormalizer(normOpts...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	normalized := norm.Normalize(parsed.Document)
	res.Document = normalized.Document
	res.Converted = normalized.Converted
	res.Fallback = normalized.Fallback
	res.ConversionErr = normalized.Err
	res.ConversionIssues = normalized.Issues
	res.Version = versionOf(res.Document)

	h := &harvester.Harvester{Logger: log, MediaTypes: cfg.mediaTypes}
	res.Occurrences = h.Harvest(res.Document)

	groupOpts := []grouper.Option{grouper.WithLogger(log), grouper.WithConcurrency(cfg.concurrency)}
	if cfg.comparator != nil {
		groupOpts = append(groupOpts, grouper.WithComparator(cfg.comparator))
	}
	g, err := grouper.New(groupOpts...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	res.Groups = g.Group(res.Occurrences)
	res.GroupNames = GroupNames(res.Groups)
	res.Metrics = metrics.Compute(res.Document, res.Occurrences, res.Groups)
	res.Duration = time.Since(start)

	log.Info("analyzer: analysis complete",
		"source", res.SourcePath,
		"occurrences", len(res.Occurrences),
		"groups", len(res.Groups),
		"duration", res.Duration)
	return res, nil
}

func (cfg *analyzeConfig) parse() (*parser.ParseResult, error) {
	if cfg.parsed != nil {
		return cfg.parsed, nil
	}
	popts := []parser.Option{
		parser.WithResolveRefs(cfg.resolveRefs),
		parser.WithLogger(cfg.logger),
	}
	switch {
	case cfg.filePath != nil:
		popts = append(popts, parser.WithFilePath(*cfg.filePath))
	case cfg.reader != nil:
		popts = append(popts, parser.WithReader(cfg.reader))
	default:
		popts = append(popts, parser.WithBytes(cfg.bytes))
	}
	popts = append(popts, cfg.parseOpts...)
	return parser.ParseWithOptions(popts...)
}

func versionOf(doc *document.Object) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc.GetString("openapi"); ok {
		return v
	}
	v, _ := doc.GetString("swagger")
	return v
}
