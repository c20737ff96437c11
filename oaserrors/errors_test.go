package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		assert.Equal(t, "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Matches sentinel through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("parser: %w", &ParseError{Path: "api.yaml"})
		assert.ErrorIs(t, wrapped, ErrParse)
		assert.NotErrorIs(t, wrapped, ErrReference)
	})
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReferenceError
		expected string
		circular bool
	}{
		{
			name:     "circular",
			err:      &ReferenceError{Ref: "#/components/schemas/Node", IsCircular: true},
			expected: "circular reference: #/components/schemas/Node",
			circular: true,
		},
		{
			name:     "external",
			err:      &ReferenceError{Ref: "other.yaml#/Pet", Path: "/paths/~1pets", IsExternal: true},
			expected: "external reference not resolved: other.yaml#/Pet at /paths/~1pets",
		},
		{
			name:     "missing target",
			err:      &ReferenceError{Ref: "#/definitions/Missing", Message: "target not found"},
			expected: "reference error: #/definitions/Missing: target not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrReference)
			assert.Equal(t, tt.circular, errors.Is(tt.err, ErrCircularReference))
		})
	}
}

func TestConversionError(t *testing.T) {
	cause := errors.New("bad body parameter")
	err := &ConversionError{SourceVersion: "2.0", TargetVersion: "3.0.3", Cause: cause}

	assert.Equal(t, "conversion error (2.0 -> 3.0.3): bad body parameter", err.Error())
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, cause)
}

func TestComparisonError(t *testing.T) {
	err := &ComparisonError{Path: "/properties/id", Keyword: "properties", Message: "expected object"}

	assert.Equal(t, "comparison error at /properties/id (properties): expected object", err.Error())
	assert.ErrorIs(t, err, ErrComparison)

	var target *ComparisonError
	wrapped := fmt.Errorf("grouper: %w", err)
	if assert.ErrorAs(t, wrapped, &target) {
		assert.Equal(t, "properties", target.Keyword)
	}
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "nesting_depth", Limit: 512, Actual: 513}
	assert.Equal(t, "resource limit exceeded: nesting_depth (limit: 512, actual: 513)", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "concurrency", Value: -1, Message: "must be positive"}
	assert.Equal(t, "configuration error for concurrency (value: -1): must be positive", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.NotErrorIs(t, err, ErrParse)
}
