package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/souhailaS/apistic/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "info",
			issue: Issue{Path: "/", Message: "converted to 3.0.3", Severity: severity.SeverityInfo},
			want:  "ℹ /: converted to 3.0.3",
		},
		{
			name: "warning with operation",
			issue: Issue{
				Path:      "/paths/~1pets/get",
				Message:   "response has no JSON body",
				Severity:  severity.SeverityWarning,
				Operation: &OperationContext{Method: "get", Path: "/pets"},
			},
			want: "⚠ /paths/~1pets/get (GET /pets): response has no JSON body",
		},
		{
			name: "critical with context",
			issue: Issue{
				Path:     "/",
				Message:  "conversion failed",
				Severity: severity.SeverityCritical,
				Context:  "unsupported collectionFormat",
			},
			want: "✗ /: conversion failed\n    Context: unsupported collectionFormat",
		},
		{
			name:  "unknown severity",
			issue: Issue{Path: "/x", Message: "m", Severity: severity.Severity(9)},
			want:  "? /x: m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestOperationContextString(t *testing.T) {
	assert.Equal(t, "", OperationContext{}.String())
	assert.Equal(t, "(path: /pets)", OperationContext{Path: "/pets"}.String())
	assert.Equal(t, "(POST /pets)", OperationContext{Method: "post", Path: "/pets"}.String())
}

func TestCount(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityInfo},
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityWarning},
	}
	assert.Equal(t, 2, Count(list, severity.SeverityWarning))
	assert.Equal(t, 0, Count(list, severity.SeverityCritical))
	assert.Equal(t, 0, Count(nil, severity.SeverityInfo))
}
