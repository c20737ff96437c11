package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler)).With("component", "parser")

	l.Debug("decoded document", "bytes", 42)
	l.Warn("reference left unresolved", "ref", "#/definitions/Node")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "component=parser")
	assert.Contains(t, out, "bytes=42")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "ref=#/definitions/Node")
}

func TestNewSlogAdapterNil(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))
	s := NewSlogAdapter(nil)
	assert.Same(t, s, OrNop(s))
}
