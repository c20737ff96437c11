package converter

import (
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/internal/issues"
	"github.com/souhailaS/apistic/internal/severity"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates content that could not be converted
	SeverityCritical = severity.SeverityCritical
)

// ConversionIssue represents a single conversion issue or limitation
type ConversionIssue = issues.Issue

// TargetVersion is the OpenAPI version produced by the default converter.
const TargetVersion = "3.0.3"

// Converter turns a legacy description into an OpenAPI 3 document.
//
// On failure an implementation may still return a ConversionResult whose
// Document holds a best-effort partial conversion; the Normalizer uses it
// instead of the original input.
type Converter interface {
	Convert(doc *document.Object) (*ConversionResult, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(doc *document.Object) (*ConversionResult, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(doc *document.Object) (*ConversionResult, error) {
	return f(doc)
}

// ConversionResult contains the outcome of converting a document
type ConversionResult struct {
	// Document is the converted document, or a partial one when conversion
	// failed part-way. Nil when nothing usable was produced.
	Document *document.Object
	// SourceVersion is the version marker of the input
	SourceVersion string
	// TargetVersion is the version marker of Document
	TargetVersion string
	// Issues contains all conversion issues
	Issues []ConversionIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if conversion completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *ConversionResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

func (r *ConversionResult) addIssue(path, message string, sev Severity) {
	r.Issues = append(r.Issues, ConversionIssue{Path: path, Message: message, Severity: sev})
}

func (r *ConversionResult) addIssueWithContext(path, message, context string, sev Severity) {
	r.Issues = append(r.Issues, ConversionIssue{Path: path, Message: message, Severity: sev, Context: context})
}

func (r *ConversionResult) updateCounts() {
	r.InfoCount = issues.Count(r.Issues, SeverityInfo)
	r.WarningCount = issues.Count(r.Issues, SeverityWarning)
	r.CriticalCount = issues.Count(r.Issues, SeverityCritical)
	r.Success = r.CriticalCount == 0
}
