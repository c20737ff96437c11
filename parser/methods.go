package parser

import "strings"

// HTTP methods that may appear as operation keys on a path item, in the
// order the OpenAPI Specification lists them.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodQuery   = "query"
)

var httpMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

// HTTPMethods returns the operation keys recognized on a path item.
func HTTPMethods() []string {
	out := make([]string, len(httpMethods))
	copy(out, httpMethods)
	return out
}

// IsHTTPMethod reports whether a path item key names an operation. Other
// keys such as "parameters", "summary" or "$ref" are not operations.
func IsHTTPMethod(key string) bool {
	k := strings.ToLower(key)
	for _, m := range httpMethods {
		if k == m {
			return true
		}
	}
	return false
}
