package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/souhailaS/apistic/analyzer"
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/metrics"
)

type analyzeInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI or Swagger document to analyze"`
	KeepRefs       bool      `json:"keep_refs,omitempty"       jsonschema:"Do not inline local $ref pointers before harvesting"`
	Concurrency    int       `json:"concurrency,omitempty"     jsonschema:"Parallel schema comparisons (default from APISTIC_CONCURRENCY)"`
	Direction      string    `json:"direction,omitempty"       jsonschema:"Only return groups used in this direction: request or response"`
	IncludeSchemas bool      `json:"include_schemas,omitempty" jsonschema:"Include each group's representative schema as JSON"`
	Offset         int       `json:"offset,omitempty"          jsonschema:"Skip the first N groups"`
	Limit          int       `json:"limit,omitempty"           jsonschema:"Maximum number of groups to return"`
}

type groupSummary struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Endpoints      []string `json:"endpoints"`
	Directions     []string `json:"directions"`
	Properties     int      `json:"properties"`
	Pointer        string   `json:"pointer,omitempty"`
	Representative string   `json:"representative,omitempty"`
}

type analyzeOutput struct {
	RunID           string         `json:"run_id"`
	Source          string         `json:"source"`
	SourceVersion   string         `json:"source_version"`
	Version         string         `json:"version"`
	Converted       bool           `json:"converted"`
	Fallback        string         `json:"fallback,omitempty"`
	ConversionError string         `json:"conversion_error,omitempty"`
	Occurrences     int            `json:"occurrences"`
	Metrics         metrics.Report `json:"metrics"`
	Total           int            `json:"total"`
	Returned        int            `json:"returned"`
	Groups          []groupSummary `json:"groups,omitempty"`
	Warnings        []string       `json:"warnings,omitempty"`
}

func handleAnalyze(_ context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	direction, err := parseDirection(input.Direction)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}
	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	parsed, err := input.Spec.resolve(!input.KeepRefs)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}
	res, err := analyzer.AnalyzeWithOptions(
		analyzer.WithParseResult(parsed),
		analyzer.WithConcurrency(concurrency),
	)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	output := analyzeOutput{
		RunID:         res.RunID,
		Source:        res.SourcePath,
		SourceVersion: res.SourceVersion,
		Version:       res.Version,
		Converted:     res.Converted,
		Occurrences:   len(res.Occurrences),
		Metrics:       res.Metrics,
		Warnings:      res.Warnings,
	}
	output.Metrics.PerGroup = nil
	if res.ConversionErr != nil {
		output.Fallback = res.Fallback.String()
		output.ConversionError = sanitizeError(res.ConversionErr)
	}

	props := make(map[int]int, len(res.Metrics.PerGroup))
	for _, gm := range res.Metrics.PerGroup {
		props[gm.ID] = gm.Properties
	}

	var selected []int
	for i, g := range res.Groups {
		if direction == "" || g.HasDirection(harvester.Direction(direction)) {
			selected = append(selected, i)
		}
	}
	output.Total = len(selected)

	page := paginate(selected, input.Offset, input.Limit)
	output.Groups = makeSlice[groupSummary](len(page))
	for _, i := range page {
		summary, err := summarizeGroup(res.Groups[i], res.GroupNames[i], props[res.Groups[i].ID], input.IncludeSchemas)
		if err != nil {
			return errResult(err), analyzeOutput{}, nil
		}
		output.Groups = append(output.Groups, summary)
	}
	output.Returned = len(output.Groups)

	return nil, output, nil
}

func summarizeGroup(g *grouper.SchemaGroup, name string, properties int, withSchema bool) (groupSummary, error) {
	s := groupSummary{
		ID:         g.ID,
		Name:       name,
		Properties: properties,
		Pointer:    g.Pointer,
		Endpoints:  make([]string, 0, len(g.Endpoints)),
		Directions: make([]string, 0, len(g.Directions)),
	}
	for _, ep := range g.Endpoints {
		s.Endpoints = append(s.Endpoints, ep.String())
	}
	for _, d := range g.Directions {
		s.Directions = append(s.Directions, string(d))
	}
	if withSchema {
		data, err := document.EncodeJSON(g.Representative)
		if err != nil {
			return groupSummary{}, fmt.Errorf("encoding group %d: %w", g.ID, err)
		}
		s.Representative = string(data)
	}
	return s, nil
}
