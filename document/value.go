package document

import (
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the JSON null literal
	KindNull Kind = iota
	// KindBool is true or false
	KindBool
	// KindNumber is a numeric literal, kept as source text
	KindNumber
	// KindString is a string
	KindString
	// KindArray is an ordered list of values
	KindArray
	// KindObject is a mapping with declaration-ordered keys
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a decoded document. The set of implementations is
// closed: Null, Bool, Number, String, Array and *Object.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text so that no precision is
// lost between decoding and encoding.
type Number string

// String is a JSON string.
type String string

// Array is an ordered list of values.
type Array []Value

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}

// Float64 returns the numeric value of n.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int returns n as an integer when it has no fractional part.
func (n Number) Int() (int64, bool) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// AsObject returns v as an *Object if it is one.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// AsArray returns v as an Array if it is one.
func AsArray(v Value) (Array, bool) {
	a, ok := v.(Array)
	return a, ok
}

// AsString returns the Go string held by v if it is a String.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// IsNull reports whether v is nil or the null literal.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	if o, ok := v.(*Object); ok {
		return o == nil
	}
	_, ok := v.(Null)
	return ok
}

// Equal reports whether a and b hold the same JSON value. Object key order
// is ignored, array order is not, and numbers compare by numeric value.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		return numbersEqual(av, b.(Number))
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.values[k]
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	return aerr == nil && berr == nil && af == bf
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch tv := v.(type) {
	case Array:
		out := make(Array, len(tv))
		for i, item := range tv {
			out[i] = Clone(item)
		}
		return out
	case *Object:
		if tv == nil {
			return Null{}
		}
		out := NewObjectWithCapacity(tv.Len())
		for _, k := range tv.keys {
			out.Set(k, Clone(tv.values[k]))
		}
		return out
	default:
		return v
	}
}

// ToAny converts v into plain Go values (map[string]any, []any, string,
// float64, bool, nil). Key order is lost; use it only for consumers that
// need generic data such as JSON schema validators.
func ToAny(v Value) any {
	switch tv := v.(type) {
	case Bool:
		return bool(tv)
	case String:
		return string(tv)
	case Number:
		if i, err := strconv.ParseInt(string(tv), 10, 64); err == nil {
			return i
		}
		f, _ := tv.Float64()
		return f
	case Array:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = ToAny(item)
		}
		return out
	case *Object:
		if tv == nil {
			return nil
		}
		out := make(map[string]any, tv.Len())
		for _, k := range tv.keys {
			out[k] = ToAny(tv.values[k])
		}
		return out
	default:
		return nil
	}
}
