// Package severity defines the levels attached to conversion and analysis
// issues. Levels are ordered Info < Warning < Error < Critical.
package severity

import "encoding"

// Severity indicates how serious a reported issue is.
type Severity int

const (
	// SeverityInfo is a notice about a choice made during processing
	SeverityInfo Severity = iota
	// SeverityWarning marks lossy conversions or suspicious input that was
	// still processed
	SeverityWarning
	// SeverityError marks input that violates the OpenAPI Specification
	SeverityError
	// SeverityCritical marks content that could not be processed at all
	SeverityCritical
)

var names = [...]string{"info", "warning", "error", "critical"}

// String returns the lowercase name of the level.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// MarshalText encodes the level by name so JSON and YAML reports are
// readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AtLeast reports whether s is as severe as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}

var _ encoding.TextMarshaler = SeverityInfo
