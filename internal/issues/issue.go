// Package issues provides the issue type reported by conversion and
// analysis stages.
package issues

import (
	"fmt"
	"strings"

	"github.com/souhailaS/apistic/internal/severity"
)

// Issue is a single problem found while converting or analyzing a document.
type Issue struct {
	// Path is the JSON Pointer of the offending node (e.g. "/paths/~1pets/get")
	Path string `json:"path" yaml:"path"`
	// Message is a human-readable description
	Message string `json:"message" yaml:"message"`
	// Severity indicates how serious the issue is
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Context carries extra detail, such as the underlying error
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
	// Operation identifies the API operation the issue belongs to, if any
	Operation *OperationContext `json:"operation,omitempty" yaml:"operation,omitempty"`
}

// OperationContext identifies an operation by method and path.
type OperationContext struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

// String formats the context as "(GET /pets)".
func (c OperationContext) String() string {
	if c.Method == "" && c.Path == "" {
		return ""
	}
	if c.Method == "" {
		return fmt.Sprintf("(path: %s)", c.Path)
	}
	return fmt.Sprintf("(%s %s)", strings.ToUpper(c.Method), c.Path)
}

// String returns a one-line (or two-line, with context) rendering of the
// issue prefixed by a severity symbol.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var sb strings.Builder
	sb.WriteString(symbol)
	sb.WriteByte(' ')
	sb.WriteString(i.Path)
	if i.Operation != nil {
		if op := i.Operation.String(); op != "" {
			sb.WriteByte(' ')
			sb.WriteString(op)
		}
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	if i.Context != "" {
		sb.WriteString("\n    Context: ")
		sb.WriteString(i.Context)
	}
	return sb.String()
}

// Count returns how many issues have exactly the given severity.
func Count(list []Issue, s severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == s {
			n++
		}
	}
	return n
}
