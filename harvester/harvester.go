package harvester

import (
	"strconv"
	"strings"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/internal/httputil"
	"github.com/souhailaS/apistic/parser"
)

// DefaultMediaTypes are tried, in order, before any other JSON media type.
var DefaultMediaTypes = []string{"application/json"}

// Harvester collects body schema occurrences from a normalized document.
type Harvester struct {
	// Logger receives debug output about skipped bodies. Nil means no logging.
	Logger parser.Logger

	// MediaTypes are the preferred JSON media types, tried in order. When
	// none of them is declared, the first media type (document order) whose
	// name ends in "+json" or is an application/*json* type is used.
	// Empty means DefaultMediaTypes.
	MediaTypes []string
}

// New returns a Harvester with default settings.
func New() *Harvester {
	return &Harvester{}
}

// Harvest collects occurrences from doc with default settings.
func Harvest(doc *document.Object) []Occurrence {
	return New().Harvest(doc)
}

// Harvest walks every operation of doc and returns one response occurrence
// per status code declaring a JSON body schema. Paths, methods and status
// codes are visited in document order. Operations with a JSON request body
// and no schema-bearing response yield a standalone request occurrence.
// A document without paths yields no occurrences.
func (h *Harvester) Harvest(doc *document.Object) []Occurrence {
	log := parser.OrNop(h.Logger)
	if doc == nil {
		return nil
	}
	paths, ok := doc.GetObject("paths")
	if !ok {
		log.Debug("harvester: document has no paths")
		return nil
	}

	var out []Occurrence
	for path, item := range paths.All() {
		if strings.HasPrefix(path, "x-") {
			continue
		}
		pathItem, ok := item.(*document.Object)
		if !ok {
			log.Debug("harvester: skipping malformed path item", "path", path)
			continue
		}
		pathParams, _ := pathItem.GetArray("parameters")
		pathPtr := document.JoinPointer("/paths", path)

		for key, raw := range pathItem.All() {
			if !parser.IsHTTPMethod(key) {
				continue
			}
			op, ok := raw.(*document.Object)
			if !ok {
				log.Debug("harvester: skipping malformed operation", "path", path, "method", key)
				continue
			}
			opPtr := document.JoinPointer(pathPtr, key)
			out = append(out, h.harvestOperation(log, path, strings.ToLower(key), opPtr, op, pathParams)...)
		}
	}
	return out
}

func (h *Harvester) harvestOperation(log parser.Logger, path, method, opPtr string, op *document.Object, pathParams document.Array) []Occurrence {
	opParams, _ := op.GetArray("parameters")
	opID, _ := op.GetString("operationId")

	base := Occurrence{
		Path:                path,
		Method:              method,
		OperationParameters: opParams,
		PathParameters:      pathParams,
		OperationID:         opID,
	}
	base.RequestBodySchema, base.RequestMediaType, base.RequestPointer = h.requestBody(op, opPtr, opParams, pathParams)

	var out []Occurrence
	if responses, ok := op.GetObject("responses"); ok {
		respPtr := document.JoinPointer(opPtr, "responses")
		for code, raw := range responses.All() {
			if strings.HasPrefix(code, "x-") {
				continue
			}
			if !httputil.IsStatusKey(code) {
				log.Warn("harvester: unexpected response key", "path", path, "method", method, "key", code)
			}
			resp, ok := raw.(*document.Object)
			if !ok {
				continue
			}
			schema, mediaType, ptr, found := h.jsonBody(resp, document.JoinPointer(respPtr, code))
			if !found {
				log.Debug("harvester: response has no JSON body", "path", path, "method", method, "status", code)
				continue
			}
			occ := base
			occ.StatusCode = code
			occ.Direction = DirectionResponse
			occ.Schema = schema
			occ.MediaType = mediaType
			occ.Pointer = ptr
			out = append(out, occ)
		}
	}

	if len(out) == 0 && base.HasRequestBody() {
		out = append(out, base.RequestOccurrence())
	}
	return out
}

// requestBody finds the JSON request body schema of an operation: the
// requestBody content, or an OAS 2.0 "in: body" parameter.
func (h *Harvester) requestBody(op *document.Object, opPtr string, opParams, pathParams document.Array) (document.Value, string, string) {
	if rb, ok := op.GetObject("requestBody"); ok {
		if schema, mt, ptr, found := h.jsonBody(rb, document.JoinPointer(opPtr, "requestBody")); found {
			return schema, mt, ptr
		}
		return nil, "", ""
	}
	if schema, ptr, ok := bodyParameter(opParams, document.JoinPointer(opPtr, "parameters")); ok {
		return schema, "application/json", ptr
	}
	// Path-level body parameters are inherited by every operation.
	if schema, _, ok := bodyParameter(pathParams, ""); ok {
		return schema, "application/json", ""
	}
	return nil, "", ""
}

func bodyParameter(params document.Array, ptr string) (document.Value, string, bool) {
	for i, p := range params {
		obj, ok := p.(*document.Object)
		if !ok {
			continue
		}
		if in, _ := obj.GetString("in"); in != "body" {
			continue
		}
		schema, ok := obj.Get("schema")
		if !ok {
			return nil, "", false
		}
		if ptr != "" {
			ptr = document.JoinPointer(ptr, strconv.Itoa(i), "schema")
		}
		return schema, ptr, true
	}
	return nil, "", false
}

// jsonBody returns the JSON schema carried by a response or request body
// object. found is false when no JSON media type with a schema is declared.
func (h *Harvester) jsonBody(body *document.Object, ptr string) (schema document.Value, mediaType, schemaPtr string, found bool) {
	content, ok := body.GetObject("content")
	if !ok {
		// OAS 2.0 shape: the schema sits directly on the response.
		if s, ok := body.Get("schema"); ok && !document.IsNull(s) {
			return s, "application/json", document.JoinPointer(ptr, "schema"), true
		}
		return nil, "", "", false
	}

	mt, ok := h.pickMediaType(content)
	if !ok {
		return nil, "", "", false
	}
	media, _ := content.GetObject(mt)
	s, _ := media.Get("schema")
	return s, mt, document.JoinPointer(ptr, "content", mt, "schema"), true
}

func (h *Harvester) pickMediaType(content *document.Object) (string, bool) {
	preferred := h.MediaTypes
	if len(preferred) == 0 {
		preferred = DefaultMediaTypes
	}
	for _, want := range preferred {
		for mt := range content.All() {
			if strings.EqualFold(httputil.BaseMediaType(mt), httputil.BaseMediaType(want)) && hasSchema(content, mt) {
				return mt, true
			}
		}
	}
	for mt := range content.All() {
		if IsJSONMediaType(mt) && hasSchema(content, mt) {
			return mt, true
		}
	}
	return "", false
}

func hasSchema(content *document.Object, mt string) bool {
	media, ok := content.GetObject(mt)
	if !ok {
		return false
	}
	s, ok := media.Get("schema")
	return ok && !document.IsNull(s)
}

// IsJSONMediaType reports whether mt names a JSON payload:
// application/json, any "+json" structured suffix, or an application
// type containing "json" such as application/x-ndjson.
func IsJSONMediaType(mt string) bool {
	return httputil.IsJSONMediaType(mt)
}
