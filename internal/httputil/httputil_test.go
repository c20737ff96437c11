package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStatusKey(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"200", true},
		{"100", true},
		{"599", true},
		{"default", true},
		{"2XX", true},
		{"4xx", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"x-foo", false},
		{"20", false},
		{"2000", false},
		{"abc", false},
		{"", false},
		{"Default", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStatusKey(tt.code))
		})
	}
}

func TestBaseMediaType(t *testing.T) {
	assert.Equal(t, "application/json", BaseMediaType("application/json"))
	assert.Equal(t, "application/json", BaseMediaType("Application/JSON; charset=utf-8"))
	assert.Equal(t, "application/hal+json", BaseMediaType(" application/hal+json "))
	assert.Equal(t, "application/json", BaseMediaType("application/json; =broken"))
}

func TestIsJSONMediaType(t *testing.T) {
	for _, mt := range []string{
		"application/json",
		"application/json; charset=utf-8",
		"application/problem+json",
		"application/vnd.api+json",
		"application/x-ndjson",
		"text/vnd.custom+json",
	} {
		assert.True(t, IsJSONMediaType(mt), mt)
	}
	for _, mt := range []string{"application/xml", "text/plain", "text/json-ish", "*/*", ""} {
		assert.False(t, IsJSONMediaType(mt), mt)
	}
}

func TestIsValidMediaType(t *testing.T) {
	for _, mt := range []string{"*/*", "application/*", "application/json", "application/json; charset=utf-8", "application/vnd.api+json"} {
		assert.True(t, IsValidMediaType(mt), mt)
	}
	for _, mt := range []string{"*/json", "/*", "json", ""} {
		assert.False(t, IsValidMediaType(mt), mt)
	}
}
