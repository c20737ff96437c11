package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
)

func objectFrom(t *testing.T, src string) *document.Object {
	t.Helper()
	v, err := document.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v.(*document.Object)
}

func TestNormalizeCurrentVersionUnchanged(t *testing.T) {
	called := false
	n, err := NewNormalizer(WithConverter(ConverterFunc(func(*document.Object) (*ConversionResult, error) {
		called = true
		return nil, errors.New("must not be called")
	})))
	require.NoError(t, err)

	for _, src := range []string{
		`{"openapi": "3.0.3", "paths": {}}`,
		`{"openapi": "3.1.0", "paths": {}}`,
	} {
		doc := objectFrom(t, src)
		res := n.Normalize(doc)
		assert.Same(t, doc, res.Document)
		assert.False(t, res.Converted)
		assert.Equal(t, FallbackNone, res.Fallback)
		assert.NoError(t, res.Err)
	}
	assert.False(t, called)
}

func TestNormalizeConvertsSwagger(t *testing.T) {
	src := parseFixture(t, "testdata/petstore-2.0.json")

	res := Normalize(src)
	require.NoError(t, res.Err)
	assert.True(t, res.Converted)
	assert.Equal(t, "2.0", res.SourceVersion)
	assert.NotSame(t, src, res.Document)

	v, _ := res.Document.GetString("openapi")
	assert.Equal(t, "3.0.3", v)
	assert.NotEmpty(t, res.Issues)
}

func TestNormalizeFallbacks(t *testing.T) {
	partial := objectFrom(t, `{"openapi": "3.0.3", "paths": {"/a": {}}}`)

	tests := []struct {
		name         string
		conv         ConverterFunc
		wantFallback Fallback
		wantPartial  bool
	}{
		{
			name: "error with partial document",
			conv: func(*document.Object) (*ConversionResult, error) {
				return &ConversionResult{Document: partial}, errors.New("lossy")
			},
			wantFallback: FallbackPartial,
			wantPartial:  true,
		},
		{
			name: "error without partial document",
			conv: func(*document.Object) (*ConversionResult, error) {
				return &ConversionResult{}, errors.New("failed")
			},
			wantFallback: FallbackOriginal,
		},
		{
			name: "error with nil result",
			conv: func(*document.Object) (*ConversionResult, error) {
				return nil, &oaserrors.ConversionError{Message: "boom"}
			},
			wantFallback: FallbackOriginal,
		},
		{
			name: "success without document",
			conv: func(*document.Object) (*ConversionResult, error) {
				return &ConversionResult{}, nil
			},
			wantFallback: FallbackOriginal,
		},
		{
			name: "panic",
			conv: func(*document.Object) (*ConversionResult, error) {
				panic("converter exploded")
			},
			wantFallback: FallbackOriginal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNormalizer(WithConverter(tt.conv))
			require.NoError(t, err)

			orig := objectFrom(t, `{"swagger": "2.0", "paths": {}}`)
			var res *NormalizeResult
			require.NotPanics(t, func() { res = n.Normalize(orig) })

			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, oaserrors.ErrConversion)
			assert.False(t, res.Converted)
			assert.Equal(t, tt.wantFallback, res.Fallback)
			if tt.wantPartial {
				assert.Same(t, partial, res.Document)
			} else {
				assert.Same(t, orig, res.Document)
			}
		})
	}
}

func TestNormalizeDefaultConverterFailureKeepsOriginal(t *testing.T) {
	orig := objectFrom(t, `{"swagger": "2.0", "paths": {"/x": {"get": {"responses": "oops"}}}}`)
	res := Normalize(orig)

	assert.Error(t, res.Err)
	assert.Equal(t, FallbackOriginal, res.Fallback)
	assert.Same(t, orig, res.Document)
}

func TestNormalizeNil(t *testing.T) {
	res := Normalize(nil)
	assert.Nil(t, res.Document)
	assert.NoError(t, res.Err)
}

func TestNewNormalizerOptions(t *testing.T) {
	_, err := NewNormalizer(WithConverter(nil))
	assert.Error(t, err)

	n, err := NewNormalizer()
	require.NoError(t, err)
	assert.IsType(t, &OAS2Converter{}, n.converter)
}

func TestFallbackString(t *testing.T) {
	assert.Equal(t, "none", FallbackNone.String())
	assert.Equal(t, "partial", FallbackPartial.String())
	assert.Equal(t, "original", FallbackOriginal.String())
}
