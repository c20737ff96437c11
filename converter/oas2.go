package converter

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
	"github.com/souhailaS/apistic/parser"
)

// OAS2Converter converts Swagger 2.0 documents to OpenAPI 3.0.3 using
// kin-openapi. Key order of paths, operations, status codes and schema
// properties is carried over from the source.
type OAS2Converter struct {
	// IncludeInfo determines whether informational issues are reported
	IncludeInfo bool
	// Logger receives debug output
	Logger parser.Logger
}

// New creates an OAS2Converter with default settings
func New() *OAS2Converter {
	return &OAS2Converter{IncludeInfo: true}
}

var _ Converter = (*OAS2Converter)(nil)

// Convert implements Converter. When the whole document cannot be
// converted, each path item is converted on its own and the returned result
// carries the paths that succeeded along with the error.
func (c *OAS2Converter) Convert(doc *document.Object) (*ConversionResult, error) {
	log := parser.OrNop(c.Logger)
	result := &ConversionResult{TargetVersion: TargetVersion}
	if doc == nil {
		return nil, &oaserrors.ConversionError{TargetVersion: TargetVersion, Message: "nil document"}
	}

	raw, ver, err := parser.DetectVersion(doc)
	result.SourceVersion = raw
	if err != nil || ver != parser.OASVersion20 {
		return nil, &oaserrors.ConversionError{
			SourceVersion: raw,
			TargetVersion: TargetVersion,
			Message:       "only Swagger 2.0 input is supported",
			Cause:         err,
		}
	}

	v2, err := decodeV2(doc)
	if err != nil {
		return nil, &oaserrors.ConversionError{
			SourceVersion: raw,
			TargetVersion: TargetVersion,
			Message:       "document does not match the Swagger 2.0 structure",
			Cause:         err,
		}
	}

	c.inspectSource(doc, v2, result)

	v3, convErr := toV3(v2)
	if convErr != nil {
		log.Warn("whole-document conversion failed, converting path items individually", "error", convErr)
		partial := c.convertPerPath(doc, v2, result)
		if partial != nil {
			if out, err := encodeV3(partial); err == nil {
				restoreOrder(doc, out)
				result.Document = out
			}
		}
		result.addIssueWithContext("/", "conversion failed", convErr.Error(), SeverityCritical)
		c.finish(result)
		return result, &oaserrors.ConversionError{
			SourceVersion: raw,
			TargetVersion: TargetVersion,
			Cause:         convErr,
		}
	}

	out, err := encodeV3(v3)
	if err != nil {
		return nil, &oaserrors.ConversionError{SourceVersion: raw, TargetVersion: TargetVersion, Message: "failed to encode converted document", Cause: err}
	}
	restoreOrder(doc, out)
	result.Document = out
	result.addIssue("/", fmt.Sprintf("Converted from %s to %s", raw, TargetVersion), SeverityInfo)
	c.finish(result)
	log.Debug("converted document", "from", raw, "to", TargetVersion, "issues", len(result.Issues))
	return result, nil
}

func (c *OAS2Converter) finish(result *ConversionResult) {
	if !c.IncludeInfo {
		filtered := result.Issues[:0]
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
	}
	result.updateCounts()
}

// convertPerPath converts the document without paths, then adds each path
// item that converts on its own.
func (c *OAS2Converter) convertPerPath(doc *document.Object, v2 *openapi2.T, result *ConversionResult) *openapi3.T {
	shell := *v2
	shell.Paths = nil
	base, err := toV3(&shell)
	if err != nil {
		result.addIssueWithContext("/", "document shell could not be converted", err.Error(), SeverityCritical)
		return nil
	}
	if base.Paths == nil {
		base.Paths = openapi3.NewPaths()
	}

	srcPaths, _ := doc.GetObject("paths")
	for _, path := range srcPaths.Keys() {
		item, ok := v2.Paths[path]
		if !ok {
			continue
		}
		single := *v2
		single.Paths = map[string]*openapi2.PathItem{path: item}
		converted, err := toV3(&single)
		if err != nil {
			result.addIssueWithContext(document.JoinPointer("/paths", path),
				"path item could not be converted and was dropped", err.Error(), SeverityCritical)
			continue
		}
		if converted.Paths == nil {
			continue
		}
		if pi := converted.Paths.Value(path); pi != nil {
			base.Paths.Set(path, pi)
		}
	}
	return base
}

// inspectSource reports Swagger 2.0 features that have no exact OpenAPI 3
// equivalent.
func (c *OAS2Converter) inspectSource(doc *document.Object, v2 *openapi2.T, result *ConversionResult) {
	if v2.Host == "" {
		result.addIssue("/servers", "No host specified in Swagger 2.0 document, servers derived from basePath only", SeverityInfo)
	}

	paths, ok := doc.GetObject("paths")
	if !ok {
		return
	}
	for path, itemVal := range paths.All() {
		item, ok := document.AsObject(itemVal)
		if !ok {
			continue
		}
		for key, opVal := range item.All() {
			base := document.JoinPointer("/paths", path, key)
			var params document.Array
			if key == "parameters" {
				params, _ = document.AsArray(opVal)
			} else if op, ok := document.AsObject(opVal); ok && parser.IsHTTPMethod(key) {
				params, _ = op.GetArray("parameters")
				base = document.JoinPointer(base, "parameters")
			}
			for i, pv := range params {
				p, ok := document.AsObject(pv)
				if !ok {
					continue
				}
				at := document.JoinPointer(base, fmt.Sprint(i))
				if cf, ok := p.GetString("collectionFormat"); ok && cf != "csv" {
					result.addIssueWithContext(at,
						fmt.Sprintf("collectionFormat %q approximated with style/explode", cf),
						"OpenAPI 3 has no direct equivalent for every collectionFormat", SeverityWarning)
				}
				if t, _ := p.GetString("type"); t == "file" {
					result.addIssue(at, "file parameter converted to a binary string property", SeverityWarning)
				}
			}
		}
	}
}

// toV3 wraps openapi2conv.ToV3, turning panics on malformed input into
// errors.
func toV3(v2 *openapi2.T) (doc *openapi3.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return openapi2conv.ToV3(v2)
}

func decodeV2(doc *document.Object) (*openapi2.T, error) {
	data, err := document.EncodeJSON(doc)
	if err != nil {
		return nil, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, err
	}
	return &v2, nil
}

func encodeV3(v3 *openapi3.T) (*document.Object, error) {
	data, err := json.Marshal(v3)
	if err != nil {
		return nil, err
	}
	v, err := document.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	obj, ok := document.AsObject(v)
	if !ok {
		return nil, fmt.Errorf("converted document is %s, not an object", document.KindOf(v))
	}
	return obj, nil
}
