package document

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// EscapeToken escapes a single JSON Pointer reference token (RFC 6901).
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// JoinPointer appends escaped tokens to a JSON Pointer.
func JoinPointer(base string, tokens ...string) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, t := range tokens {
		sb.WriteByte('/')
		sb.WriteString(EscapeToken(t))
	}
	return sb.String()
}

// Lookup resolves a JSON Pointer against root. The pointer may be given in
// URI fragment form ("#/components/schemas/Pet"), in which case it is
// percent-decoded first.
func Lookup(root Value, pointer string) (Value, error) {
	if strings.HasPrefix(pointer, "#") {
		decoded, err := url.PathUnescape(pointer[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid pointer %q: %w", pointer, err)
		}
		pointer = decoded
	}
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid pointer %q: must start with '/'", pointer)
	}

	current := root
	tokens := strings.Split(pointer[1:], "/")
	for i, raw := range tokens {
		token := UnescapeToken(raw)
		switch v := current.(type) {
		case *Object:
			next, ok := v.Get(token)
			if !ok {
				return nil, fmt.Errorf("pointer %q: missing key %q", pointer, token)
			}
			current = next
		case Array:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("pointer %q: invalid array index %q", pointer, token)
			}
			current = v[idx]
		default:
			return nil, fmt.Errorf("pointer %q: cannot descend into %s at /%s",
				pointer, KindOf(current), strings.Join(tokens[:i], "/"))
		}
	}
	return current, nil
}

// KindOf returns the kind of v, treating nil as null.
func KindOf(v Value) Kind {
	if IsNull(v) {
		return KindNull
	}
	return v.Kind()
}

func indexToken(i int) string { return strconv.Itoa(i) }
