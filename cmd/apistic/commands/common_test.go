package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f), f)
	}
	assert.ErrorContains(t, ValidateOutputFormat("xml"), "invalid format 'xml'")
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestOutputStructured(t *testing.T) {
	data := struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}{"orders", 3}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.Equal(t, "{\n  \"name\": \"orders\",\n  \"count\": 3\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Contains(t, buf.String(), "name: orders")
	assert.Contains(t, buf.String(), "count: 3")

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")

	buf.Reset()
	NewLogger(&buf, true).Debug("details")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
