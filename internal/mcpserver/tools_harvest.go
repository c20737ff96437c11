package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/souhailaS/apistic/converter"
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/harvester"
)

type harvestInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI or Swagger document to harvest"`
	KeepRefs       bool      `json:"keep_refs,omitempty"       jsonschema:"Do not inline local $ref pointers before harvesting"`
	Direction      string    `json:"direction,omitempty"       jsonschema:"Only return occurrences of this direction: request or response"`
	Path           string    `json:"path,omitempty"            jsonschema:"Only return occurrences whose path matches this glob"`
	GroupBy        string    `json:"group_by,omitempty"        jsonschema:"Count occurrences by direction, status_code, method, or media_type"`
	IncludeSchemas bool      `json:"include_schemas,omitempty" jsonschema:"Include each occurrence's schema as JSON"`
	Offset         int       `json:"offset,omitempty"          jsonschema:"Skip the first N occurrences"`
	Limit          int       `json:"limit,omitempty"           jsonschema:"Maximum number of occurrences to return"`
}

type occurrenceSummary struct {
	Endpoint  string `json:"endpoint"`
	Direction string `json:"direction"`
	MediaType string `json:"media_type,omitempty"`
	Pointer   string `json:"pointer"`
	Schema    string `json:"schema,omitempty"`
}

type harvestOutput struct {
	Version     string              `json:"version"`
	Converted   bool                `json:"converted"`
	Total       int                 `json:"total"`
	Returned    int                 `json:"returned"`
	Occurrences []occurrenceSummary `json:"occurrences,omitempty"`
	Groups      []groupCount        `json:"groups,omitempty"`
}

var harvestGroupBy = []string{"direction", "status_code", "method", "media_type"}

func handleHarvest(_ context.Context, _ *mcp.CallToolRequest, input harvestInput) (*mcp.CallToolResult, harvestOutput, error) {
	direction, err := parseDirection(input.Direction)
	if err != nil {
		return errResult(err), harvestOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, harvestGroupBy); err != nil {
		return errResult(err), harvestOutput{}, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), harvestOutput{}, nil
	}

	parsed, err := input.Spec.resolve(!input.KeepRefs)
	if err != nil {
		return errResult(err), harvestOutput{}, nil
	}
	normalized := converter.Normalize(parsed.Document)
	version, _ := normalized.Document.GetString("openapi")

	// Responses first, then deduplicated requests, matching the order in
	// which groups are built.
	harvested := harvester.Harvest(normalized.Document)
	occs := append(harvester.Responses(harvested), harvester.Requests(harvested)...)

	var matched []harvester.Occurrence
	for _, occ := range occs {
		if direction != "" && string(occ.Direction) != direction {
			continue
		}
		if !matchPath(input.Path, occ.Path) {
			continue
		}
		matched = append(matched, occ)
	}

	output := harvestOutput{
		Version:   version,
		Converted: normalized.Converted,
		Total:     len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, occurrenceKey(strings.ToLower(input.GroupBy)))
		return nil, output, nil
	}

	page := paginate(matched, input.Offset, input.Limit)
	output.Occurrences = makeSlice[occurrenceSummary](len(page))
	for _, occ := range page {
		s := occurrenceSummary{
			Endpoint:  occ.Endpoint().String(),
			Direction: string(occ.Direction),
			MediaType: occ.MediaType,
			Pointer:   occ.Pointer,
		}
		if input.IncludeSchemas {
			data, err := document.EncodeJSON(occ.Schema)
			if err != nil {
				return errResult(err), harvestOutput{}, nil
			}
			s.Schema = string(data)
		}
		output.Occurrences = append(output.Occurrences, s)
	}
	output.Returned = len(output.Occurrences)
	return nil, output, nil
}

func occurrenceKey(groupBy string) func(harvester.Occurrence) string {
	switch groupBy {
	case "status_code":
		return func(o harvester.Occurrence) string {
			if o.StatusCode == "" {
				return "(request)"
			}
			return o.StatusCode
		}
	case "method":
		return func(o harvester.Occurrence) string { return strings.ToUpper(o.Method) }
	case "media_type":
		return func(o harvester.Occurrence) string { return o.MediaType }
	default:
		return func(o harvester.Occurrence) string { return string(o.Direction) }
	}
}
