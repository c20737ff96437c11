// Package httputil holds the HTTP vocabulary used when reading operation
// bodies: response status keys and media types.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// IsStatusKey reports whether a responses key names a status: "default",
// a range such as "2XX", or a numeric code from 100 to 599.
func IsStatusKey(code string) bool {
	if code == "default" {
		return true
	}
	if len(code) != 3 {
		return false
	}
	if strings.EqualFold(code[1:], "XX") {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= minStatusCode && n <= maxStatusCode
}

// BaseMediaType returns mt without parameters, lower-cased:
// "Application/JSON; charset=utf-8" becomes "application/json".
func BaseMediaType(mt string) string {
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// IsJSONMediaType reports whether mt names a JSON payload:
// application/json, any "+json" structured suffix, or an application
// type containing "json" such as application/x-ndjson.
func IsJSONMediaType(mt string) bool {
	base := BaseMediaType(mt)
	if strings.HasSuffix(base, "+json") {
		return true
	}
	return strings.HasPrefix(base, "application/") && strings.Contains(base, "json")
}

// IsValidMediaType reports whether mt is a well-formed media type or a
// range such as "*/*" or "application/*". "*/json" is rejected.
func IsValidMediaType(mt string) bool {
	if mt == "*/*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(mt, "/*"); ok {
		return prefix != "" && prefix != "*" && !strings.Contains(prefix, "/")
	}
	_, _, err := mime.ParseMediaType(mt)
	return err == nil && strings.Contains(mt, "/") && !strings.HasPrefix(mt, "*/")
}
