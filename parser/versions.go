package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/souhailaS/apistic/document"
)

// OASVersion is a release line of the OpenAPI Specification.
type OASVersion int

const (
	// Unknown is an unrecognized or missing version
	Unknown OASVersion = iota
	// OASVersion20 is Swagger 2.0
	OASVersion20
	// OASVersion30 is any OpenAPI 3.0.x release
	OASVersion30
	// OASVersion31 is any OpenAPI 3.1.x release
	OASVersion31
	// OASVersion32 is any OpenAPI 3.2.x release
	OASVersion32
)

func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	case OASVersion32:
		return "3.2"
	default:
		return "unknown"
	}
}

// IsOAS3 reports whether v is one of the 3.x lines.
func (v OASVersion) IsOAS3() bool {
	return v == OASVersion30 || v == OASVersion31 || v == OASVersion32
}

// ParseVersion maps a version string such as "3.0.3", "3.1.0-rc1" or
// "2.0" to its release line. Future patch releases of a known line are
// accepted.
func ParseVersion(s string) (OASVersion, bool) {
	base, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	parts := strings.Split(base, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Unknown, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Unknown, false
		}
		nums[i] = n
	}

	switch {
	case nums[0] == 2 && nums[1] == 0:
		return OASVersion20, true
	case nums[0] == 3 && nums[1] == 0:
		return OASVersion30, true
	case nums[0] == 3 && nums[1] == 1:
		return OASVersion31, true
	case nums[0] == 3 && nums[1] == 2:
		return OASVersion32, true
	}
	return Unknown, false
}

// DetectVersion reads the "openapi" or "swagger" marker from the document
// root. Numeric markers (swagger: 2.0 written without quotes) are accepted.
func DetectVersion(root *document.Object) (string, OASVersion, error) {
	for _, key := range []string{"openapi", "swagger"} {
		v, ok := root.Get(key)
		if !ok {
			continue
		}
		var raw string
		switch tv := v.(type) {
		case document.String:
			raw = string(tv)
		case document.Number:
			raw = string(tv)
		default:
			return "", Unknown, fmt.Errorf("parser: %q must be a string, got %s", key, document.KindOf(v))
		}
		ver, ok := ParseVersion(raw)
		if !ok {
			return raw, Unknown, fmt.Errorf("parser: unsupported %s version: %s", key, raw)
		}
		if key == "swagger" && ver != OASVersion20 {
			return raw, Unknown, fmt.Errorf("parser: unsupported swagger version: %s", raw)
		}
		if key == "openapi" && !ver.IsOAS3() {
			return raw, Unknown, fmt.Errorf("parser: unsupported openapi version: %s", raw)
		}
		return raw, ver, nil
	}
	return "", Unknown, fmt.Errorf("parser: unable to detect OpenAPI version: document must contain either 'swagger: \"2.0\"' or 'openapi: \"3.x.x\"' at the root level")
}
