package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhailaS/apistic/oaserrors"
)

func mustObject(t *testing.T, src string) *Object {
	t.Helper()
	v, _, err := Decode([]byte(src))
	require.NoError(t, err)
	obj, ok := AsObject(v)
	require.True(t, ok, "expected object, got %s", KindOf(v))
	return obj
}

func TestDecodeJSONPreservesKeyOrder(t *testing.T) {
	obj := mustObject(t, `{"zeta": 1, "alpha": 2, "mid": {"b": true, "a": null}}`)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
	mid, ok := obj.GetObject("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, mid.Keys())

	a, _ := mid.Get("a")
	assert.True(t, IsNull(a))
}

func TestDecodeJSONNumbersKeepLiteral(t *testing.T) {
	v, err := DecodeJSON([]byte(`[1, 2.50, 12345678901234567890]`))
	require.NoError(t, err)

	arr, ok := AsArray(v)
	require.True(t, ok)
	assert.Equal(t, Number("1"), arr[0])
	assert.Equal(t, Number("2.50"), arr[1])
	assert.Equal(t, Number("12345678901234567890"), arr[2])
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated object", `{"a": 1`},
		{"trailing data", `{"a": 1} {"b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
paths:
  /pets:
    get:
      responses:
        200:
          description: ok
        404:
          description: missing
  /owners:
    post: {}
enabled: yes
count: 0x1F
ratio: 1.5
`
	obj := mustObject(t, src)

	paths, ok := obj.GetObject("paths")
	require.True(t, ok)
	assert.Equal(t, []string{"/pets", "/owners"}, paths.Keys())

	pets, _ := paths.GetObject("/pets")
	get, _ := pets.GetObject("get")
	responses, _ := get.GetObject("responses")
	assert.Equal(t, []string{"200", "404"}, responses.Keys())

	// YAML 1.2 core schema: "yes" is a plain string
	enabled, _ := obj.Get("enabled")
	assert.Equal(t, String("yes"), enabled)

	count, _ := obj.Get("count")
	assert.Equal(t, Number("31"), count)

	ratio, _ := obj.Get("ratio")
	assert.Equal(t, Number("1.5"), ratio)
}

func TestDecodeYAMLAnchorsAndMerge(t *testing.T) {
	src := `
base: &base
  type: object
  description: shared
derived:
  <<: *base
  description: override
alias: *base
`
	obj := mustObject(t, src)

	derived, ok := obj.GetObject("derived")
	require.True(t, ok)
	assert.Equal(t, []string{"description", "type"}, derived.Keys())
	desc, _ := derived.GetString("description")
	assert.Equal(t, "override", desc)

	alias, ok := obj.GetObject("alias")
	require.True(t, ok)
	typ, _ := alias.GetString("type")
	assert.Equal(t, "object", typ)
}

func TestDecodeYAMLInvalid(t *testing.T) {
	_, err := DecodeYAML([]byte("a: [1, 2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)

	_, err = DecodeYAML([]byte(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}

// nestedAliases builds a document where each of levels anchors repeats the
// previous one fanout times.
func nestedAliases(levels, fanout int) string {
	var b strings.Builder
	names := "abcdefghijklmnop"
	b.WriteString("a: &a [" + strings.TrimSuffix(strings.Repeat("x,", fanout), ",") + "]\n")
	for i := 1; i < levels; i++ {
		prev, cur := string(names[i-1]), string(names[i])
		b.WriteString(cur + ": &" + cur + " [" + strings.TrimSuffix(strings.Repeat("*"+prev+",", fanout), ",") + "]\n")
	}
	return b.String()
}

func TestDecodeYAMLAliasExpansion(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantLimit bool
	}{
		{name: "small reuse", src: nestedAliases(3, 10)},
		{name: "shared schema", src: "base: &base {type: object}\nusers: *base\npets: *base\n"},
		{name: "exponential fanout", src: nestedAliases(7, 10), wantLimit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeYAML([]byte(tt.src))
			if !tt.wantLimit {
				require.NoError(t, err)
				assert.NotNil(t, v)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
			var limitErr *oaserrors.ResourceLimitError
			require.ErrorAs(t, err, &limitErr)
			assert.Equal(t, "alias_expansion", limitErr.ResourceType)
			assert.Greater(t, limitErr.Actual, limitErr.Limit)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  \n{\"a\":1}")))
	assert.Equal(t, FormatJSON, DetectFormat([]byte("\xef\xbb\xbf[1]")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("openapi: 3.0.0")))
	assert.Equal(t, FormatYAML, DetectFormat(nil))
}

func TestEncodeJSONKeepsOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", String("x\"y"))
	obj.Set("a", Array{Number("1"), Bool(true), Null{}})
	obj.Set("c", NewObject())

	data, err := EncodeJSON(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"x\"y","a":[1,true,null],"c":{}}`, string(data))
	assert.Equal(t, string(data), obj.String())

	indented, err := EncodeJSONIndent(obj, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"b\": \"x\\\"y\"")
}

func TestEncodeYAMLKeepsOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zeta", Number("200"))
	obj.Set("alpha", String("true"))
	obj.Set("list", Array{Number("1.5")})

	data, err := EncodeYAML(obj)
	require.NoError(t, err)

	back, err := DecodeYAML(data)
	require.NoError(t, err)
	assert.True(t, Equal(obj, back), "round trip changed value: %s", data)

	backObj, _ := AsObject(back)
	assert.Equal(t, []string{"zeta", "alpha", "list"}, backObj.Keys())
}

func TestObjectOperations(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number("1"))
	obj.Set("b", Number("2"))
	obj.Set("c", Number("3"))
	obj.Set("a", Number("10"))

	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, Number("10"), a)

	obj.Delete("b")
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.False(t, obj.Has("b"))

	obj.Set("d", nil)
	d, _ := obj.Get("d")
	assert.Equal(t, Null{}, d)

	obj.Reorder([]string{"d", "missing", "a"})
	assert.Equal(t, []string{"d", "a", "c"}, obj.Keys())

	var keys []string
	for k := range obj.All() {
		keys = append(keys, k)
		if k == "a" {
			break
		}
	}
	assert.Equal(t, []string{"d", "a"}, keys)
}

func TestEqual(t *testing.T) {
	a := mustObject(t, `{"x": 1, "y": [1, 2], "z": {"k": "v"}}`)
	b := mustObject(t, `{"z": {"k": "v"}, "y": [1, 2], "x": 1.0}`)
	c := mustObject(t, `{"x": 1, "y": [2, 1], "z": {"k": "v"}}`)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.True(t, Equal(nil, Null{}))
	assert.False(t, Equal(String("1"), Number("1")))
}

func TestCloneIsDeep(t *testing.T) {
	orig := mustObject(t, `{"a": {"b": [1]}}`)
	cp := Clone(orig).(*Object)

	inner, _ := cp.GetObject("a")
	inner.Set("c", Bool(true))

	origInner, _ := orig.GetObject("a")
	assert.False(t, origInner.Has("c"))
}

func TestToAny(t *testing.T) {
	obj := mustObject(t, `{"n": 3, "f": 1.5, "s": "x", "l": [true, null]}`)
	got := ToAny(obj)
	assert.Equal(t, map[string]any{
		"n": int64(3),
		"f": 1.5,
		"s": "x",
		"l": []any{true, nil},
	}, got)
}

func TestLookup(t *testing.T) {
	root := mustObject(t, `{
		"paths": {"/pets/{id}": {"get": {"tags": ["a", "b"]}}},
		"weird": {"a~b": 1, "c d": 2}
	}`)

	tests := []struct {
		pointer string
		want    Value
	}{
		{"#/paths/~1pets~1{id}/get/tags/1", String("b")},
		{"/weird/a~0b", Number("1")},
		{"#/weird/c%20d", Number("2")},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			got, err := Lookup(root, tt.pointer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := Lookup(root, "#")
	require.NoError(t, err)
	assert.Same(t, root, got)

	_, err = Lookup(root, "#/paths/missing")
	assert.Error(t, err)
	_, err = Lookup(root, "#/paths/~1pets~1{id}/get/tags/7")
	assert.Error(t, err)
	_, err = Lookup(root, "#/weird/a~0b/deeper")
	assert.Error(t, err)
}

func TestJoinPointer(t *testing.T) {
	assert.Equal(t, "/paths/~1pets/get", JoinPointer("/paths", "/pets", "get"))
	assert.Equal(t, "/a~0b", JoinPointer("", "a~b"))
	assert.Equal(t, "a/b", UnescapeToken(EscapeToken("a/b")))
}

func TestResolveLocalRefs(t *testing.T) {
	root := mustObject(t, `{
		"components": {"schemas": {
			"Pet": {"type": "object", "properties": {"owner": {"$ref": "#/components/schemas/Owner"}}},
			"Owner": {"type": "object", "properties": {"name": {"type": "string"}}}
		}},
		"paths": {"/pets": {"get": {"responses": {"200": {"content": {"application/json": {
			"schema": {"$ref": "#/components/schemas/Pet", "description": "a pet"}
		}}}}}}}
	}`)

	errs := ResolveLocalRefs(root)
	assert.Empty(t, errs)

	schema, err := Lookup(root, "/paths/~1pets/get/responses/200/content/application~1json/schema")
	require.NoError(t, err)
	obj, ok := AsObject(schema)
	require.True(t, ok)
	assert.False(t, obj.Has("$ref"))
	desc, _ := obj.GetString("description")
	assert.Equal(t, "a pet", desc)

	owner, err := Lookup(obj, "/properties/owner/properties/name/type")
	require.NoError(t, err)
	assert.Equal(t, String("string"), owner)
}

func TestResolveLocalRefsCircularAndExternal(t *testing.T) {
	root := mustObject(t, `{
		"definitions": {
			"Node": {"type": "object", "properties": {"next": {"$ref": "#/definitions/Node"}}},
			"Remote": {"$ref": "other.yaml#/Thing"},
			"Broken": {"$ref": "#/definitions/Nope"}
		}
	}`)

	errs := ResolveLocalRefs(root)
	require.Len(t, errs, 3)

	var circular, external, missing int
	for _, e := range errs {
		switch {
		case e.IsCircular:
			circular++
			assert.Equal(t, "#/definitions/Node", e.Ref)
		case e.IsExternal:
			external++
		default:
			missing++
			assert.Equal(t, "#/definitions/Nope", e.Ref)
		}
	}
	assert.Equal(t, 1, circular)
	assert.Equal(t, 1, external)
	assert.Equal(t, 1, missing)

	// circular reference stays a $ref so the tree remains finite
	next, err := Lookup(root, "/definitions/Node/properties/next/$ref")
	require.NoError(t, err)
	assert.Equal(t, String("#/definitions/Node"), next)
}
