package document

import (
	"bytes"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// EncodeJSON returns the compact JSON encoding of v with object keys in
// declaration order.
func EncodeJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSONIndent is like EncodeJSON but applies indentation.
func EncodeJSONIndent(v Value, prefix, indent string) ([]byte, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeYAML returns the YAML encoding of v with mapping keys in
// declaration order.
func EncodeYAML(v Value) ([]byte, error) {
	return yaml.Marshal(ToYAMLNode(v))
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch tv := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if tv {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if !json.Valid([]byte(tv)) {
			return writeString(buf, string(tv))
		}
		buf.WriteString(string(tv))
	case String:
		return writeString(buf, string(tv))
	case Array:
		buf.WriteByte('[')
		for i, item := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		if tv == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range tv.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, tv.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	data, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) { return EncodeJSON(o) }

// MarshalJSON implements json.Marshaler.
func (a Array) MarshalJSON() ([]byte, error) { return EncodeJSON(a) }

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) { return EncodeJSON(n) }

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalYAML implements yaml.Marshaler.
func (o *Object) MarshalYAML() (any, error) { return ToYAMLNode(o), nil }

// MarshalYAML implements yaml.Marshaler.
func (a Array) MarshalYAML() (any, error) { return ToYAMLNode(a), nil }

// MarshalYAML implements yaml.Marshaler.
func (n Number) MarshalYAML() (any, error) { return ToYAMLNode(n), nil }

// MarshalYAML implements yaml.Marshaler.
func (Null) MarshalYAML() (any, error) { return nil, nil }

// ToYAMLNode builds a yaml.Node tree for v, keeping key order.
func ToYAMLNode(v Value) *yaml.Node {
	switch tv := v.(type) {
	case Bool:
		if tv {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"}
	case Number:
		tag := "!!float"
		if _, err := tv.Float64(); err != nil {
			tag = "!!str"
		} else if _, ok := tv.Int(); ok && !bytes.ContainsAny([]byte(tv), ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(tv)}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(tv)}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range tv {
			n.Content = append(n.Content, ToYAMLNode(item))
		}
		return n
	case *Object:
		if tv == nil {
			break
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range tv.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToYAMLNode(tv.values[k]),
			)
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
