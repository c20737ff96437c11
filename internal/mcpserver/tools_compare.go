package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/equivalence"
)

type compareInput struct {
	Left           string   `json:"left"                      jsonschema:"First schema (JSON or YAML)"`
	Right          string   `json:"right"                     jsonschema:"Second schema (JSON or YAML)"`
	IgnoreKeywords []string `json:"ignore_keywords,omitempty" jsonschema:"Keywords to ignore instead of the default documentation keywords"`
	Extensions     bool     `json:"extensions,omitempty"      jsonschema:"Also compare x- extension keywords"`
	FirstOnly      bool     `json:"first_only,omitempty"      jsonschema:"Stop at the first difference"`
}

type differenceSummary struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Left    string `json:"left,omitempty"`
	Right   string `json:"right,omitempty"`
}

type compareOutput struct {
	Equivalent  bool                `json:"equivalent"`
	Differences []differenceSummary `json:"differences,omitempty"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	left, err := decodeSchema("left", input.Left)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	right, err := decodeSchema("right", input.Right)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	opts := []equivalence.Option{
		equivalence.WithExtensions(input.Extensions),
		equivalence.WithAllDifferences(!input.FirstOnly),
	}
	if input.IgnoreKeywords != nil {
		opts = append(opts, equivalence.WithIgnoredKeywords(input.IgnoreKeywords...))
	}
	cmp, err := equivalence.New(opts...)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	res, err := cmp.Compare(left, right)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	output := compareOutput{
		Equivalent:  res.Equivalent,
		Differences: makeSlice[differenceSummary](len(res.Differences)),
	}
	for _, d := range res.Differences {
		output.Differences = append(output.Differences, differenceSummary{
			Path:    d.Path,
			Type:    string(d.Type),
			Message: d.Message,
			Left:    encodeOptional(d.Left),
			Right:   encodeOptional(d.Right),
		})
	}
	return nil, output, nil
}

func decodeSchema(side, src string) (document.Value, error) {
	if src == "" {
		return nil, fmt.Errorf("%s schema is required", side)
	}
	if int64(len(src)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("%s schema size %d bytes exceeds maximum %d bytes", side, len(src), cfg.MaxInlineSize)
	}
	v, _, err := document.Decode([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("decoding %s schema: %w", side, err)
	}
	return v, nil
}

func encodeOptional(v document.Value) string {
	if v == nil {
		return ""
	}
	data, err := document.EncodeJSON(v)
	if err != nil {
		return ""
	}
	return string(data)
}
