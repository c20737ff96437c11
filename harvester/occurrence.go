package harvester

import (
	"fmt"
	"strings"

	"github.com/souhailaS/apistic/document"
)

// Direction tells whether a body schema is sent by the client or returned
// by the server.
type Direction string

const (
	// DirectionRequest marks a request body schema.
	DirectionRequest Direction = "request"
	// DirectionResponse marks a response body schema.
	DirectionResponse Direction = "response"
)

// Endpoint identifies where a schema is used. StatusCode is empty for
// request bodies.
type Endpoint struct {
	Path       string `json:"path" yaml:"path"`
	Method     string `json:"method" yaml:"method"`
	StatusCode string `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
}

// String renders the endpoint as "GET /pets 200".
func (e Endpoint) String() string {
	if e.StatusCode == "" {
		return fmt.Sprintf("%s %s", strings.ToUpper(e.Method), e.Path)
	}
	return fmt.Sprintf("%s %s %s", strings.ToUpper(e.Method), e.Path, e.StatusCode)
}

// Occurrence is one body schema usage site.
type Occurrence struct {
	// Path is the path template, e.g. "/pets/{petId}".
	Path string

	// Method is the lower-case HTTP method.
	Method string

	// StatusCode is the response code ("200", "default"). Empty for requests.
	StatusCode string

	// Direction is DirectionResponse for response bodies and
	// DirectionRequest for standalone request occurrences.
	Direction Direction

	// Schema is the JSON body schema. Nil when the body has no schema.
	Schema document.Value

	// MediaType is the media type the schema was taken from.
	MediaType string

	// Pointer is the JSON Pointer of Schema within the document.
	Pointer string

	// RequestBodySchema is the operation's JSON request body schema, if any.
	RequestBodySchema document.Value

	// RequestMediaType is the media type RequestBodySchema was taken from.
	RequestMediaType string

	// RequestPointer is the JSON Pointer of RequestBodySchema.
	RequestPointer string

	// OperationParameters are the parameters declared on the operation.
	OperationParameters document.Array

	// PathParameters are the parameters declared on the enclosing path item.
	PathParameters document.Array

	// OperationID is the operation's operationId, if declared.
	OperationID string
}

// Endpoint returns the occurrence's (path, method, status code) triple.
func (o Occurrence) Endpoint() Endpoint {
	return Endpoint{Path: o.Path, Method: o.Method, StatusCode: o.StatusCode}
}

// HasSchema reports whether the occurrence carries a non-empty body schema.
func (o Occurrence) HasSchema() bool {
	return !IsEmptySchema(o.Schema)
}

// HasRequestBody reports whether the operation carries a non-empty request
// body schema.
func (o Occurrence) HasRequestBody() bool {
	return !IsEmptySchema(o.RequestBodySchema)
}

// RequestOccurrence returns the request-direction view of o: the request
// body schema keyed by (path, method) with an empty status code.
func (o Occurrence) RequestOccurrence() Occurrence {
	req := o
	req.Direction = DirectionRequest
	req.StatusCode = ""
	req.Schema = o.RequestBodySchema
	req.MediaType = o.RequestMediaType
	req.Pointer = o.RequestPointer
	return req
}

// IsEmptySchema reports whether v carries no schema: nil, null or {}.
func IsEmptySchema(v document.Value) bool {
	if v == nil || document.IsNull(v) {
		return true
	}
	if obj, ok := v.(*document.Object); ok {
		return obj.Len() == 0
	}
	return false
}

// Responses returns the response-direction occurrences with a non-empty
// schema, in harvest order.
func Responses(occurrences []Occurrence) []Occurrence {
	var out []Occurrence
	for _, o := range occurrences {
		if o.Direction == DirectionResponse && o.HasSchema() {
			out = append(out, o)
		}
	}
	return out
}

// Requests returns one request-direction occurrence per operation that
// has a non-empty request body, in harvest order. Response occurrences
// contribute their RequestBodySchema; the first one seen for an operation
// wins.
func Requests(occurrences []Occurrence) []Occurrence {
	type opKey struct{ path, method string }
	seen := make(map[opKey]bool)
	var out []Occurrence
	for _, o := range occurrences {
		key := opKey{o.Path, o.Method}
		if seen[key] {
			continue
		}
		var req Occurrence
		switch o.Direction {
		case DirectionRequest:
			if !o.HasSchema() {
				continue
			}
			req = o
		default:
			if !o.HasRequestBody() {
				continue
			}
			req = o.RequestOccurrence()
		}
		seen[key] = true
		out = append(out, req)
	}
	return out
}
