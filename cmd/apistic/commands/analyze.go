package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/souhailaS/apistic"
	"github.com/souhailaS/apistic/analyzer"
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/metrics"
)

// AnalyzeFlags contains flags for the analyze command
type AnalyzeFlags struct {
	Format      string
	Concurrency int
	ResolveRefs bool
	Validate    bool
	Schemas     bool
	Verbose     bool
}

// AnalyzeReport is the structured (json/yaml) output of the analyze command.
type AnalyzeReport struct {
	RunID           string         `json:"runId" yaml:"runId"`
	Source          string         `json:"source" yaml:"source"`
	SourceVersion   string         `json:"sourceVersion" yaml:"sourceVersion"`
	Version         string         `json:"version" yaml:"version"`
	Converted       bool           `json:"converted" yaml:"converted"`
	Fallback        string         `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	ConversionError string         `json:"conversionError,omitempty" yaml:"conversionError,omitempty"`
	Metrics         metrics.Report `json:"metrics" yaml:"metrics"`
	Groups          []GroupReport  `json:"groups" yaml:"groups"`
	Warnings        []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// GroupReport describes one schema group.
type GroupReport struct {
	ID             int                   `json:"id" yaml:"id"`
	Name           string                `json:"name" yaml:"name"`
	Endpoints      []harvester.Endpoint  `json:"endpoints" yaml:"endpoints"`
	Directions     []harvester.Direction `json:"directions" yaml:"directions"`
	Representative document.Value        `json:"representative,omitempty" yaml:"representative,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	flags := &AnalyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [flags] <file|url|->",
		Short: "Harvest and group the body schemas of a document",
		Long: `Analyze parses an OpenAPI 3.x or Swagger 2.0 document, converts Swagger
input to OpenAPI 3, collects the JSON body schema of every response and
request, groups structurally equivalent schemas and prints metrics.

Pass - to read the document from stdin.`,
		Example: `  apistic analyze openapi.yaml
  apistic analyze --format json --schemas https://example.com/openapi.json
  cat swagger.json | apistic analyze --concurrency 4 -`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return ValidateOutputFormat(flags.Format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	f.IntVarP(&flags.Concurrency, "concurrency", "c", 1, "parallel schema comparisons")
	f.BoolVar(&flags.ResolveRefs, "resolve-refs", true, "inline local $ref pointers before harvesting")
	f.BoolVar(&flags.Validate, "validate", false, "validate OpenAPI 3.0 structure and report findings as warnings")
	f.BoolVar(&flags.Schemas, "schemas", false, "include each group's representative schema")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "log pipeline progress to stderr")
	return cmd
}

func runAnalyze(cmd *cobra.Command, specPath string, flags *AnalyzeFlags) error {
	opts := []analyzer.Option{
		analyzer.WithConcurrency(flags.Concurrency),
		analyzer.WithResolveRefs(flags.ResolveRefs),
		analyzer.WithValidateStructure(flags.Validate),
		analyzer.WithLogger(NewLogger(cmd.ErrOrStderr(), flags.Verbose)),
	}
	if specPath == StdinFilePath {
		opts = append(opts,
			analyzer.WithReader(cmd.InOrStdin()),
			analyzer.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, analyzer.WithFilePath(specPath))
	}

	res, err := analyzer.AnalyzeWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", FormatSpecPath(specPath), err)
	}

	report := buildReport(res, flags.Schemas)
	out := cmd.OutOrStdout()
	if flags.Format != FormatText {
		return OutputStructured(out, report, flags.Format)
	}
	writeText(out, report, res)
	return nil
}

func buildReport(res *analyzer.Result, withSchemas bool) AnalyzeReport {
	report := AnalyzeReport{
		RunID:         res.RunID,
		Source:        res.SourcePath,
		SourceVersion: res.SourceVersion,
		Version:       res.Version,
		Converted:     res.Converted,
		Metrics:       res.Metrics,
		Groups:        make([]GroupReport, 0, len(res.Groups)),
		Warnings:      res.Warnings,
	}
	if res.ConversionErr != nil {
		report.Fallback = res.Fallback.String()
		report.ConversionError = res.ConversionErr.Error()
	}
	for i, g := range res.Groups {
		gr := GroupReport{
			ID:         g.ID,
			Name:       res.GroupNames[i],
			Endpoints:  g.Endpoints,
			Directions: g.Directions,
		}
		if withSchemas {
			gr.Representative = g.Representative
		}
		report.Groups = append(report.Groups, gr)
	}
	return report
}

func writeText(w io.Writer, report AnalyzeReport, res *analyzer.Result) {
	m := report.Metrics
	Writef(w, "apistic version: %s\n", apistic.Version())
	Writef(w, "Specification: %s\n", report.Source)
	if report.Converted {
		Writef(w, "Version: %s (converted to %s)\n", report.SourceVersion, report.Version)
	} else {
		Writef(w, "Version: %s\n", report.Version)
	}
	if report.ConversionError != "" {
		Writef(w, "Conversion failed, using %s document: %s\n", report.Fallback, report.ConversionError)
	}
	Writef(w, "\n")
	Writef(w, "Paths: %d\n", m.Paths)
	Writef(w, "Operations: %d (%.2f per path)\n", m.Operations, m.OperationsPerPath)
	Writef(w, "Parameters: %d (%.2f per operation)\n", m.Parameters, m.ParametersPerOperation)
	Writef(w, "Named schemas: %d\n", m.NamedSchemas)
	Writef(w, "Body schemas: %d responses, %d requests\n", m.ResponseSchemas, m.RequestSchemas)
	Writef(w, "Groups: %d (%d response, %d request, %d shared, %d reused)\n",
		m.Groups, m.ResponseGroups, m.RequestGroups, m.SharedGroups, m.ReusedGroups)
	Writef(w, "Reuse ratio: %.2f\n", m.ReuseRatio)
	Writef(w, "Analysis time: %v\n", res.Duration)

	for _, g := range report.Groups {
		Writef(w, "\n#%d %s [%s]\n", g.ID, g.Name, joinDirections(g.Directions))
		for _, ep := range g.Endpoints {
			Writef(w, "  %s\n", ep)
		}
		if g.Representative != nil {
			if data, err := document.EncodeJSONIndent(g.Representative, "  ", "  "); err == nil {
				Writef(w, "  %s\n", data)
			}
		}
	}

	if len(report.Warnings) > 0 {
		Writef(w, "\nWarnings (%d):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			Writef(w, "  - %s\n", warning)
		}
	}
}

func joinDirections(dirs []harvester.Direction) string {
	parts := make([]string, len(dirs))
	for i, d := range dirs {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}
