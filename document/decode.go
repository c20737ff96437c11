package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/souhailaS/apistic/oaserrors"
)

// Format is the serialization a document was decoded from.
type Format string

const (
	// FormatJSON indicates JSON input
	FormatJSON Format = "json"
	// FormatYAML indicates YAML input
	FormatYAML Format = "yaml"
)

// MaxNestingDepth bounds recursion while decoding. Well-formed API
// descriptions stay far below it.
const MaxNestingDepth = 10000

// DetectFormat guesses the serialization of data from its first
// significant byte.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode decodes a JSON or YAML document, preserving key order.
func Decode(data []byte) (Value, Format, error) {
	format := DetectFormat(data)
	var v Value
	var err error
	if format == FormatJSON {
		v, err = DecodeJSON(data)
	} else {
		v, err = DecodeYAML(data)
	}
	return v, format, err
}

// DecodeJSON decodes a single JSON value from data.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec}

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &oaserrors.ParseError{Message: "empty document"}
		}
		return nil, &oaserrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	v, err := d.value(tok, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &oaserrors.ParseError{Message: "unexpected data after top-level JSON value"}
	}
	return v, nil
}

type jsonDecoder struct {
	dec *json.Decoder
}

func (d *jsonDecoder) value(tok json.Token, depth int) (Value, error) {
	if depth > MaxNestingDepth {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: MaxNestingDepth}
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object(depth)
		case '[':
			return d.array(depth)
		}
		return nil, &oaserrors.ParseError{Message: fmt.Sprintf("unexpected delimiter %q", rune(t))}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, &oaserrors.ParseError{Message: fmt.Sprintf("unexpected JSON token %v", tok)}
}

func (d *jsonDecoder) object(depth int) (Value, error) {
	obj := NewObject()
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, &oaserrors.ParseError{Message: "invalid JSON object", Cause: err}
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("object key must be a string, got %v", tok)}
		}
		next, err := d.dec.Token()
		if err != nil {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("invalid value for key %q", key), Cause: err}
		}
		v, err := d.value(next, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (d *jsonDecoder) array(depth int) (Value, error) {
	arr := Array{}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, &oaserrors.ParseError{Message: "invalid JSON array", Cause: err}
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return arr, nil
		}
		v, err := d.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// DecodeYAML decodes a YAML document. Anchors and aliases are expanded and
// merge keys ("<<") are applied without overriding explicit keys.
func DecodeYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	if node.Kind == 0 {
		return nil, &oaserrors.ParseError{Message: "empty document"}
	}
	return FromYAMLNode(&node)
}

const (
	// aliasExpansionFactor is how many times larger than its source a
	// YAML tree may grow once aliases are expanded.
	aliasExpansionFactor = 100
	// aliasExpansionAllowance is added to the expansion budget so small
	// documents that reuse anchors heavily still decode.
	aliasExpansionAllowance = 1 << 20
)

// FromYAMLNode converts a yaml.Node tree into a Value. Alias expansion is
// bounded: a tree whose expanded size passes the budget yields a
// *oaserrors.ResourceLimitError with ResourceType "alias_expansion".
func FromYAMLNode(node *yaml.Node) (Value, error) {
	c := &yamlConverter{limit: sourceNodes(node)*aliasExpansionFactor + aliasExpansionAllowance}
	return c.node(node, 0)
}

// sourceNodes counts the nodes of a tree as written, without following aliases.
func sourceNodes(n *yaml.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Content {
		count += sourceNodes(child)
	}
	return count
}

type yamlConverter struct {
	built int
	limit int
}

func (c *yamlConverter) node(n *yaml.Node, depth int) (Value, error) {
	if depth > MaxNestingDepth {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: MaxNestingDepth}
	}
	c.built++
	if c.built > c.limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "alias_expansion",
			Limit:        int64(c.limit),
			Actual:       int64(c.built),
			Message:      "YAML aliases expand to too many nodes",
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return c.node(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Null{}, nil
		}
		return c.node(n.Alias, depth+1)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.node(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return c.mapping(n, depth)
	case yaml.ScalarNode:
		return scalarFromNode(n), nil
	}
	return nil, &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf("unsupported YAML node kind %d", n.Kind)}
}

func (c *yamlConverter) mapping(n *yaml.Node, depth int) (Value, error) {
	obj := NewObjectWithCapacity(len(n.Content) / 2)
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &oaserrors.ParseError{
				Line:    keyNode.Line,
				Column:  keyNode.Column,
				Message: "mapping keys must be scalars",
			}
		}
		if keyNode.ShortTag() == "!!merge" {
			merges = append(merges, valueNode)
			continue
		}
		v, err := c.node(valueNode, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(keyNode.Value, v)
	}

	for _, m := range merges {
		sources := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			v, err := c.node(src, depth+1)
			if err != nil {
				return nil, err
			}
			merged, ok := AsObject(v)
			if !ok {
				return nil, &oaserrors.ParseError{Line: src.Line, Column: src.Column, Message: "merge key value must be a mapping"}
			}
			for k, mv := range merged.All() {
				if !obj.Has(k) {
					obj.Set(k, mv)
				}
			}
		}
	}
	return obj, nil
}

func scalarFromNode(n *yaml.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return Null{}
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return Bool(b)
		}
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return Number(n.Value)
		}
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return Number(strconv.FormatInt(i, 10))
		}
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			return Number(n.Value)
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err == nil && !isInfOrNaN(f) {
			return Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	return String(n.Value)
}

func isInfOrNaN(f float64) bool {
	return f != f || f > 1.7976931348623157e308 || f < -1.7976931348623157e308
}
