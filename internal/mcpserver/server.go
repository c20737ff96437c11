// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apistic schema analysis as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/souhailaS/apistic"
)

const serverInstructions = `apistic MCP server. Extracts the JSON body schemas of an OpenAPI or Swagger document, groups structurally equivalent schemas, and reports reuse metrics.

Tools:
- analyze: full pipeline; returns metrics and schema groups with their endpoints
- harvest: lists the body schema occurrences of every operation
- compare: checks whether two inline schemas are structurally equivalent

Configuration is read from APISTIC_* environment variables:
- APISTIC_CACHE_ENABLED (default: true): cache parsed documents
- APISTIC_CACHE_MAX_SIZE (default: 16): entries per input kind
- APISTIC_CACHE_FILE_TTL (default: 15m), APISTIC_CACHE_URL_TTL (default: 5m), APISTIC_CACHE_CONTENT_TTL (default: 15m)
- APISTIC_LIST_LIMIT (default: 50): default page size
- APISTIC_MAX_LIMIT (default: 500): largest page size accepted
- APISTIC_CONCURRENCY (default: 1): comparison workers used by analyze
- APISTIC_MAX_INLINE_SIZE (default: 10MiB): size limit for inline content
- APISTIC_ALLOW_PRIVATE_IPS (default: false): allow URL inputs on internal networks

File entries are keyed by path and modification time, so edited files are parsed again.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apistic", Version: apistic.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze the JSON body schemas of an OpenAPI 3.x or Swagger 2.0 document. Swagger input is converted to OpenAPI 3 first. Returns structural metrics (paths, operations, parameters, schemas, groups, reuse ratio) and the groups of structurally equivalent schemas with the endpoints that use them and a suggested name. Filter groups by direction (request or response). Set include_schemas=true to return each group's representative schema. Use offset/limit to page through groups.",
	}, handleAnalyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "harvest",
		Description: "List the body schema occurrences of an OpenAPI or Swagger document in document order: one entry per response with a JSON schema, plus request bodies. Filter by direction or path glob (* matches one segment). Use group_by (direction, status_code, method, media_type) to get distribution counts instead of individual occurrences.",
	}, handleHarvest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two JSON Schema objects (JSON or YAML) for structural equivalence. Documentation keywords (description, title, example, examples, deprecated, $comment, externalDocs) are ignored by default. Returns every difference with its JSON pointer.",
	}, handleCompare)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 so omitempty drops the field.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount is one bucket of a group_by result.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort counts items per key, most frequent first, ties broken by key.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern rejects malformed path globs before any matching.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchPath reports whether an API path matches pattern. Patterns without
// glob characters must match exactly.
func matchPath(pattern, apiPath string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == apiPath
	}
	ok, _ := path.Match(pattern, apiPath)
	return ok
}

// parseDirection validates a direction filter. Empty means both.
func parseDirection(s string) (string, error) {
	switch d := strings.ToLower(s); d {
	case "", "request", "response":
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q; valid values: request, response", s)
	}
}
