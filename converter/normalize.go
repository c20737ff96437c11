package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
	"github.com/souhailaS/apistic/parser"
)

// Fallback records which document Normalize returned after a failed
// conversion.
type Fallback int

const (
	// FallbackNone means no fallback was needed
	FallbackNone Fallback = iota
	// FallbackPartial means the converter's partial output was used
	FallbackPartial
	// FallbackOriginal means the unconverted input was used
	FallbackOriginal
)

func (f Fallback) String() string {
	switch f {
	case FallbackPartial:
		return "partial"
	case FallbackOriginal:
		return "original"
	default:
		return "none"
	}
}

// MarshalText encodes the fallback by name.
func (f Fallback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// NormalizeResult is the outcome of Normalize. Document is always set when
// the input was non-nil.
type NormalizeResult struct {
	// Document is the normalized document, a partial conversion, or the
	// original input (see Fallback)
	Document *document.Object
	// SourceVersion is the version marker of the input
	SourceVersion string
	// Converted is true when the converter ran and succeeded
	Converted bool
	// Fallback tells which document was used after a failed conversion
	Fallback Fallback
	// Err is the conversion failure, if any. Normalize never returns it.
	Err error
	// Issues are the issues reported by the converter
	Issues []ConversionIssue
}

// Normalizer ensures documents are in OpenAPI 3 form before harvesting.
type Normalizer struct {
	converter Converter
	logger    parser.Logger
}

// NewNormalizer creates a Normalizer. Without WithConverter the default
// Swagger 2.0 converter is used.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("converter: invalid options: %w", err)
	}
	return &Normalizer{converter: cfg.converter, logger: cfg.logger}, nil
}

// Normalize is a convenience function that normalizes doc with the default
// converter.
func Normalize(doc *document.Object) *NormalizeResult {
	n := &Normalizer{converter: New(), logger: parser.NopLogger{}}
	return n.Normalize(doc)
}

// Normalize returns doc unchanged when it declares "openapi: 3.x".
// Otherwise it converts doc. Conversion failures never escape: the
// converter's partial output is used when there is one, else the original
// input, and the failure is recorded in the result.
func (n *Normalizer) Normalize(doc *document.Object) *NormalizeResult {
	result := &NormalizeResult{Document: doc}
	if doc == nil {
		return result
	}
	result.SourceVersion = versionMarker(doc)
	if isCurrentVersion(doc) {
		return result
	}

	converted, err := n.convert(doc)
	if converted != nil {
		result.Issues = converted.Issues
	}
	if err == nil && converted != nil && converted.Document != nil {
		result.Document = converted.Document
		result.Converted = true
		n.logger.Debug("normalized document", "from", result.SourceVersion, "to", converted.TargetVersion)
		return result
	}

	if err == nil {
		err = errors.New("converter returned no document")
	}
	var convErr *oaserrors.ConversionError
	if !errors.As(err, &convErr) {
		err = &oaserrors.ConversionError{SourceVersion: result.SourceVersion, TargetVersion: TargetVersion, Cause: err}
	}
	result.Err = err

	if converted != nil && converted.Document != nil {
		result.Document = converted.Document
		result.Fallback = FallbackPartial
	} else {
		result.Fallback = FallbackOriginal
	}
	n.logger.Warn("conversion failed, continuing with fallback document",
		"fallback", result.Fallback.String(), "error", err)
	return result
}

// convert calls the converter, turning a panic into an error with no
// partial document.
func (n *Normalizer) convert(doc *document.Object) (res *ConversionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return n.converter.Convert(doc)
}

func versionMarker(doc *document.Object) string {
	for _, key := range []string{"openapi", "swagger"} {
		if v, ok := doc.Get(key); ok {
			switch tv := v.(type) {
			case document.String:
				return string(tv)
			case document.Number:
				return string(tv)
			}
		}
	}
	return ""
}

// isCurrentVersion reports whether doc carries an "openapi: 3.x" marker.
func isCurrentVersion(doc *document.Object) bool {
	v, ok := doc.Get("openapi")
	if !ok {
		return false
	}
	var s string
	switch tv := v.(type) {
	case document.String:
		s = string(tv)
	case document.Number:
		s = string(tv)
	default:
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(s), "3.")
}
