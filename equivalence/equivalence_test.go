package equivalence

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
)

func schema(t *testing.T, src string) document.Value {
	t.Helper()
	v, err := document.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v
}

var fixtures = []string{
	`{"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}, "required": ["id"]}`,
	`{"type": "array", "items": {"type": "string", "enum": ["a", "b"]}}`,
	`{"oneOf": [{"type": "string"}, {"type": "integer", "format": "int64"}]}`,
	`{"type": ["string", "null"], "maxLength": 10}`,
	`{"type": "object", "additionalProperties": false}`,
	`{"allOf": [{"$ref": "#/components/schemas/Base"}, {"properties": {"x": {"not": {"type": "null"}}}}]}`,
	`{}`,
	`true`,
}

func TestEquivalentReflexive(t *testing.T) {
	for _, src := range fixtures {
		assert.True(t, Equivalent(schema(t, src), schema(t, src)), src)
	}
}

func TestEquivalentSymmetric(t *testing.T) {
	for _, a := range fixtures {
		for _, b := range fixtures {
			av, bv := schema(t, a), schema(t, b)
			assert.Equal(t, Equivalent(av, bv), Equivalent(bv, av), "%s <> %s", a, b)
		}
	}
}

func TestEquivalentIgnoresAnnotations(t *testing.T) {
	a := schema(t, `{
		"type": "object",
		"description": "A user",
		"title": "User",
		"x-internal": true,
		"properties": {
			"id": {"type": "integer", "description": "identifier", "example": 7},
			"tags": {"type": "array", "items": {"type": "string", "description": "tag"}},
			"role": {"allOf": [{"type": "string", "deprecated": true, "$comment": "legacy"}]}
		},
		"externalDocs": {"url": "https://example.com"}
	}`)
	b := schema(t, `{
		"properties": {
			"role": {"allOf": [{"type": "string"}]},
			"id": {"examples": [1, 2], "type": "integer"},
			"tags": {"items": {"type": "string"}, "type": "array"}
		},
		"type": "object"
	}`)

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.True(t, res.Equivalent, "%v", res.Differences)
	assert.Empty(t, res.Differences)
}

func TestEquivalentKeepsPropertyNamedDescription(t *testing.T) {
	a := schema(t, `{"type": "object", "properties": {"description": {"type": "string"}, "title": {"type": "string"}}}`)
	b := schema(t, `{"type": "object", "properties": {"title": {"type": "string"}}}`)

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.False(t, res.Equivalent)
	require.Len(t, res.Differences, 1)
	assert.Equal(t, "/properties/description", res.Differences[0].Path)
	assert.Equal(t, DifferenceRemoved, res.Differences[0].Type)
}

func TestEquivalentSetsAndValues(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"property order", `{"properties": {"a": {"type": "string"}, "b": {"type": "integer"}}}`, `{"properties": {"b": {"type": "integer"}, "a": {"type": "string"}}}`, true},
		{"required order", `{"required": ["a", "b"]}`, `{"required": ["b", "a"]}`, true},
		{"required differs", `{"required": ["a"]}`, `{"required": ["a", "b"]}`, false},
		{"type list order", `{"type": ["string", "null"]}`, `{"type": ["null", "string"]}`, true},
		{"type string vs singleton list", `{"type": "string"}`, `{"type": ["string"]}`, true},
		{"enum order matters", `{"enum": ["a", "b"]}`, `{"enum": ["b", "a"]}`, false},
		{"format differs", `{"type": "string", "format": "date"}`, `{"type": "string", "format": "date-time"}`, false},
		{"number literals", `{"maximum": 10}`, `{"maximum": 10.0}`, true},
		{"boolean schemas", `{"additionalProperties": false}`, `{"additionalProperties": true}`, false},
		{"boolean vs object schema", `{"additionalProperties": true}`, `{"additionalProperties": {}}`, false},
		{"items tuple vs schema", `{"items": [{"type": "string"}]}`, `{"items": {"type": "string"}}`, false},
		{"oneOf length", `{"oneOf": [{"type": "string"}]}`, `{"oneOf": [{"type": "string"}, {"type": "integer"}]}`, false},
		{"oneOf order", `{"oneOf": [{"type": "string"}, {"type": "integer"}]}`, `{"oneOf": [{"type": "integer"}, {"type": "string"}]}`, false},
		{"missing type", `{"type": "object"}`, `{}`, false},
		{"nil and null", `null`, `null`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equivalent(schema(t, tt.a), schema(t, tt.b)))
		})
	}
	assert.True(t, Equivalent(nil, nil))
	assert.False(t, Equivalent(nil, schema(t, `{"type": "string"}`)))
}

func TestCompareTypeMismatchShortCircuits(t *testing.T) {
	a := schema(t, `{"type": "object", "properties": {"a": {"type": "string"}}}`)
	b := schema(t, `{"type": "string", "properties": ["not", "a", "map"]}`)

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.False(t, res.Equivalent)
	require.Len(t, res.Differences, 1)
	assert.Equal(t, "/type", res.Differences[0].Path)
	assert.Equal(t, "modified /type: type differs", res.Differences[0].String())
}

func TestCompareMalformed(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		keyword string
	}{
		{"properties not an object", `{"properties": []}`, `{"properties": []}`, "properties"},
		{"allOf not an array", `{"allOf": {}}`, `{"allOf": {}}`, "allOf"},
		{"required not strings", `{"required": [1]}`, `{"required": [1]}`, "required"},
		{"items is a string", `{"items": "string"}`, `{"items": "string"}`, "items"},
		{"type is a number", `{"type": 1}`, `{"type": 1}`, "type"},
		{"property is a string", `{"properties": {"a": "string"}}`, `{"properties": {"a": "string"}}`, "properties"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := schema(t, tt.a), schema(t, tt.b)
			_, err := Compare(a, b)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrComparison)

			var cmpErr *oaserrors.ComparisonError
			require.True(t, errors.As(err, &cmpErr))
			assert.Equal(t, tt.keyword, cmpErr.Keyword)

			assert.False(t, Equivalent(a, b))
		})
	}
}

func nested(levels int) string {
	return strings.Repeat(`{"type": "object", "properties": {"child": `, levels) +
		`{"type": "string"}` + strings.Repeat(`}}`, levels)
}

func TestCompareDepthLimit(t *testing.T) {
	c, err := New(WithMaxDepth(2))
	require.NoError(t, err)

	deep := schema(t, nested(3))
	_, err = c.Compare(deep, deep)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrComparison)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	shallow := schema(t, nested(2))
	assert.True(t, c.Equivalent(shallow, shallow))

	big := schema(t, nested(300))
	assert.True(t, Equivalent(big, schema(t, nested(300))))
	assert.False(t, Equivalent(big, schema(t, nested(299))))
}

func TestCompareAllDifferences(t *testing.T) {
	a := schema(t, `{"type": "object", "properties": {"a": {"type": "string"}, "b": {"type": "integer"}}}`)
	b := schema(t, `{"type": "object", "properties": {"a": {"type": "integer"}, "c": {"type": "integer"}}}`)

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.Len(t, res.Differences, 1)

	c, err := New(WithAllDifferences(true))
	require.NoError(t, err)
	res, err = c.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, res.Differences, 3)
	assert.Equal(t, "/properties/a/type", res.Differences[0].Path)
	assert.Equal(t, DifferenceModified, res.Differences[0].Type)
	assert.Equal(t, "/properties/b", res.Differences[1].Path)
	assert.Equal(t, DifferenceRemoved, res.Differences[1].Type)
	assert.Equal(t, "/properties/c", res.Differences[2].Path)
	assert.Equal(t, DifferenceAdded, res.Differences[2].Type)
}

func TestComparatorOptions(t *testing.T) {
	a := schema(t, `{"type": "string", "description": "a", "x-kind": "a"}`)
	b := schema(t, `{"type": "string", "description": "b", "x-kind": "b"}`)
	assert.True(t, Equivalent(a, b))

	strict, err := New(WithIgnoredKeywords())
	require.NoError(t, err)
	assert.False(t, strict.Equivalent(a, b))

	ext, err := New(WithExtensions(true))
	require.NoError(t, err)
	assert.False(t, ext.Equivalent(a, b))

	titleOnly, err := New(WithIgnoredKeywords("description"))
	require.NoError(t, err)
	assert.True(t, titleOnly.Equivalent(a, b))

	_, err = New(WithMaxDepth(0))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	assert.Same(t, defaultComparator, Default())
}
