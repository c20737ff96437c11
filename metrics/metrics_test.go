package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/parser"
)

func schema(t *testing.T, src string) document.Value {
	t.Helper()
	v, err := document.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v
}

func TestComputeCatalog(t *testing.T) {
	parsed, err := parser.ParseWithOptions(
		parser.WithFilePath("testdata/catalog.yaml"),
		parser.WithResolveRefs(true),
	)
	require.NoError(t, err)
	occs := harvester.Harvest(parsed.Document)
	groups := grouper.Group(occs)

	r := Compute(parsed.Document, occs, groups)

	assert.Equal(t, 4, r.Paths)
	assert.Equal(t, 7, r.Operations)
	assert.Equal(t, 3, r.NamedSchemas)
	assert.Equal(t, 3, r.Parameters)
	assert.InDelta(t, 7.0/4, r.OperationsPerPath, 1e-9)
	assert.InDelta(t, 3.0/7, r.ParametersPerOperation, 1e-9)

	assert.Equal(t, 8, r.ResponseSchemas)
	assert.Equal(t, 3, r.RequestSchemas)
	assert.Equal(t, 5, r.Groups)
	assert.Equal(t, 3, r.ResponseGroups)
	assert.Equal(t, 2, r.RequestGroups)
	assert.Equal(t, 0, r.SharedGroups)
	assert.Equal(t, 3, r.ReusedGroups)
	assert.InDelta(t, 6.0/11, r.ReuseRatio, 1e-9)
	assert.InDelta(t, 2.2, r.EndpointsPerGroup, 1e-9)
	assert.Equal(t, 8, r.Properties)
	assert.InDelta(t, 1.6, r.PropertiesPerGroup, 1e-9)
	assert.Equal(t, 1, r.LargestGroup)
	assert.Equal(t, 4, r.LargestGroupEndpoints)

	require.Len(t, r.PerGroup, 5)
	assert.Equal(t, GroupMetrics{ID: 4, Endpoints: 2, Requests: 2, Responses: 0, Properties: 2}, r.PerGroup[3])
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, Report{}, Compute(nil, nil, nil))

	doc := schema(t, `{"openapi": "3.0.3", "paths": {}}`).(*document.Object)
	assert.Equal(t, Report{}, Compute(doc, nil, nil))
}

func TestCountParametersOverrides(t *testing.T) {
	doc := schema(t, `{"paths": {"/a/{id}": {
		"parameters": [{"name": "id", "in": "path"}, {"name": "trace", "in": "header"}],
		"get": {"parameters": [{"name": "id", "in": "path"}, {"name": "q", "in": "query"}]},
		"delete": {},
		"summary": "not an operation"
	}}}`).(*document.Object)

	// get: id, q, trace. delete: id, trace.
	assert.Equal(t, 5, countParameters(doc))
}

func TestCountParametersNonObjectEntries(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "path level entries are each counted",
			src:  `{"paths": {"/a": {"parameters": ["x", 7], "get": {}}}}`,
			want: 2,
		},
		{
			name: "operation entries do not hide path entries",
			src:  `{"paths": {"/a": {"parameters": ["x"], "get": {"parameters": [null]}}}}`,
			want: 2,
		},
		{
			name: "mixed with real parameters",
			src: `{"paths": {"/a": {
				"parameters": [{"name": "id", "in": "path"}, true],
				"get": {"parameters": [{"name": "id", "in": "path"}, false]}
			}}}`,
			want: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := schema(t, tt.src).(*document.Object)
			assert.Equal(t, tt.want, countParameters(doc))
		})
	}
}

func TestCountProperties(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"flat", `{"properties": {"a": {}, "b": {}}}`, 2},
		{"nested", `{"properties": {"a": {"properties": {"b": {}, "c": {}}}}}`, 3},
		{"items", `{"type": "array", "items": {"properties": {"a": {}}}}`, 1},
		{"composition", `{"allOf": [{"properties": {"a": {}}}, {"properties": {"b": {}}}]}`, 2},
		{"additional", `{"additionalProperties": {"properties": {"a": {}}}}`, 1},
		{"scalar", `{"type": "string"}`, 0},
		{"boolean", `true`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountProperties(schema(t, tt.src)))
		})
	}
	assert.Equal(t, 0, CountProperties(nil))
}
