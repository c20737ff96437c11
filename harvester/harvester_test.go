package harvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/parser"
)

func parseFixture(t *testing.T, path string) *document.Object {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithFilePath(path))
	require.NoError(t, err)
	return result.Document
}

func objectFrom(t *testing.T, src string) *document.Object {
	t.Helper()
	v, err := document.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v.(*document.Object)
}

func endpoints(occs []Occurrence) []string {
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		out = append(out, o.Endpoint().String())
	}
	return out
}

func TestHarvestOrderAndMediaTypes(t *testing.T) {
	occs := Harvest(parseFixture(t, "testdata/shop-3.0.yaml"))

	assert.Equal(t, []string{
		"POST /orders 201",
		"POST /orders 400",
		"GET /orders 200",
		"PUT /orders/{id}/cancel",
		"GET /health default",
	}, endpoints(occs))

	created := occs[0]
	assert.Equal(t, DirectionResponse, created.Direction)
	assert.Equal(t, "application/json", created.MediaType)
	assert.Equal(t, "/paths/~1orders/post/responses/201/content/application~1json/schema", created.Pointer)
	assert.Equal(t, "createOrder", created.OperationID)
	assert.True(t, created.HasRequestBody())
	assert.Equal(t, "application/json", created.RequestMediaType)
	assert.Len(t, created.OperationParameters, 1)
	assert.Len(t, created.PathParameters, 1)

	assert.Equal(t, "application/problem+json", occs[1].MediaType)
	assert.Equal(t, "application/vnd.shop.v1+json", occs[2].MediaType)
	assert.False(t, occs[2].HasRequestBody())

	cancel := occs[3]
	assert.Equal(t, DirectionRequest, cancel.Direction)
	assert.Empty(t, cancel.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", cancel.MediaType)
	assert.True(t, cancel.HasSchema())
	assert.Equal(t, "/paths/~1orders~1{id}~1cancel/put/requestBody/content/application~1json; charset=utf-8/schema", cancel.Pointer)

	health := occs[4]
	assert.False(t, health.HasSchema())
}

func TestHarvestSplitsDirections(t *testing.T) {
	occs := Harvest(parseFixture(t, "testdata/shop-3.0.yaml"))

	assert.Equal(t, []string{
		"POST /orders 201",
		"POST /orders 400",
		"GET /orders 200",
	}, endpoints(Responses(occs)))

	requests := Requests(occs)
	assert.Equal(t, []string{"POST /orders", "PUT /orders/{id}/cancel"}, endpoints(requests))
	for _, r := range requests {
		assert.Equal(t, DirectionRequest, r.Direction)
		assert.True(t, r.HasSchema())
	}
	assert.Equal(t, "/paths/~1orders/post/requestBody/content/application~1json/schema", requests[0].Pointer)
}

func TestHarvestSwaggerShapes(t *testing.T) {
	occs := Harvest(parseFixture(t, "testdata/legacy-2.0.yaml"))
	require.Len(t, occs, 1)

	occ := occs[0]
	assert.Equal(t, "POST /items 200", occ.Endpoint().String())
	assert.Equal(t, "application/json", occ.MediaType)
	assert.Equal(t, "/paths/~1items/post/responses/200/schema", occ.Pointer)
	require.True(t, occ.HasRequestBody())
	assert.Equal(t, "/paths/~1items/post/parameters/0/schema", occ.RequestPointer)

	props, err := document.Lookup(occ.RequestBodySchema, "/properties")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, props.(*document.Object).Keys())
}

func TestHarvestPreferredMediaTypes(t *testing.T) {
	h := &Harvester{MediaTypes: []string{"text/plain"}}
	occs := h.Harvest(parseFixture(t, "testdata/shop-3.0.yaml"))
	require.Len(t, occs, 5)
	assert.Equal(t, "text/plain", occs[2].MediaType)
	assert.Equal(t, "application/json", occs[0].MediaType)
}

func TestHarvestStructuralEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"no paths", `{"openapi": "3.0.3"}`, 0},
		{"paths not an object", `{"openapi": "3.0.3", "paths": []}`, 0},
		{"malformed path item", `{"paths": {"/a": "oops"}}`, 0},
		{"malformed operation", `{"paths": {"/a": {"get": 1}}}`, 0},
		{"no responses no body", `{"paths": {"/a": {"get": {}}}}`, 0},
		{"non-method keys", `{"paths": {"/a": {"summary": "x", "parameters": [], "get": {"responses": {"200": {"content": {"application/json": {"schema": {"type": "string"}}}}}}}}}`, 1},
		{"upper-case method", `{"paths": {"/a": {"GET": {"responses": {"200": {"content": {"application/json": {"schema": {"type": "string"}}}}}}}}}`, 1},
		{"null schema", `{"paths": {"/a": {"get": {"responses": {"200": {"content": {"application/json": {"schema": null}}}}}}}}`, 0},
		{"response extension", `{"paths": {"/a": {"get": {"responses": {"x-note": {"schema": {"type": "string"}}}}}}}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Harvest(objectFrom(t, tt.src)), tt.want)
		})
	}

	assert.Nil(t, Harvest(nil))

	occs := Harvest(objectFrom(t, `{"paths": {"/a": {"GET": {"responses": {"200": {"content": {"application/json": {"schema": {"type": "string"}}}}}}}}}`))
	assert.Equal(t, "get", occs[0].Method)
}

func TestIsEmptySchema(t *testing.T) {
	assert.True(t, IsEmptySchema(nil))
	assert.True(t, IsEmptySchema(document.Null{}))
	assert.True(t, IsEmptySchema(document.NewObject()))

	obj := document.NewObject()
	obj.Set("type", document.String("string"))
	assert.False(t, IsEmptySchema(obj))
	assert.False(t, IsEmptySchema(document.Bool(true)))
}

func TestIsJSONMediaType(t *testing.T) {
	for mt, want := range map[string]bool{
		"application/json":                true,
		"Application/JSON; charset=utf-8": true,
		"application/problem+json":        true,
		"application/x-ndjson":            true,
		"text/vnd.api+json":               true,
		"text/plain":                      false,
		"application/xml":                 false,
		"text/json-ish":                   false,
	} {
		assert.Equal(t, want, IsJSONMediaType(mt), mt)
	}
}

func TestEndpointString(t *testing.T) {
	assert.Equal(t, "GET /pets 200", Endpoint{Path: "/pets", Method: "get", StatusCode: "200"}.String())
	assert.Equal(t, "POST /pets", Endpoint{Path: "/pets", Method: "post"}.String())
}
