package schema

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a payload is neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("schema: unsupported document format")

// orderedMap keeps object keys in document order so that property
// declaration order survives decoding.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]any)}
}

func (m *orderedMap) set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// ParseJSON decodes a JSON schema document, preserving property order.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "schema: decode json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("schema: decode json: trailing data after document")
	}
	obj, ok := value.(*orderedMap)
	if !ok {
		return nil, errors.New("schema: document root must be an object")
	}
	return nodeFromMap(obj, "#")
}

// ParseYAML decodes a YAML schema document, preserving property order.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "schema: decode yaml")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		root = root.Content[0]
	}
	value, err := decodeYAMLValue(root)
	if err != nil {
		return nil, errors.Wrap(err, "schema: decode yaml")
	}
	obj, ok := value.(*orderedMap)
	if !ok {
		return nil, errors.New("schema: document root must be a mapping")
	}
	return nodeFromMap(obj, "#")
}

// ParseBytes sniffs the payload: anything starting with '{' is JSON, every
// other payload is handed to the YAML decoder.
func ParseBytes(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}
	if trimmed[0] == '{' {
		return ParseJSON(trimmed)
	}
	if trimmed[0] == '[' {
		return nil, ErrUnsupportedFormat
	}
	return ParseYAML(trimmed)
}

// Parse decodes the payload held by doc.
func Parse(doc Document) (*Node, error) {
	node, err := ParseBytes(doc.raw)
	if err != nil {
		return nil, errors.Wrapf(err, "schema: parse %s", doc.Location())
	}
	return node, nil
}

// UnmarshalJSON lets a Node be the target of json.Unmarshal.
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// UnmarshalYAML lets a Node be the target of yaml.Unmarshal.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := decodeYAMLValue(value)
	if err != nil {
		return err
	}
	obj, ok := decoded.(*orderedMap)
	if !ok {
		return errors.Newf("schema: expected a mapping at line %d", value.Line)
	}
	parsed, err := nodeFromMap(obj, "#")
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := newOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Newf("unexpected object key %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, errors.Newf("unexpected delimiter %q", rune(v))
		}
	case json.Number:
		return numberValue(v.String())
	default:
		return v, nil
	}
}

func decodeYAMLValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeYAMLValue(node.Content[0])
	case yaml.AliasNode:
		return decodeYAMLValue(node.Alias)
	case yaml.MappingNode:
		obj := newOrderedMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, errors.Newf("non-scalar mapping key at line %d", keyNode.Line)
			}
			value, err := decodeYAMLValue(valueNode)
			if err != nil {
				return nil, err
			}
			obj.set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeYAMLValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!int", "!!float":
			return numberValue(node.Value)
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!null":
			return nil, nil
		default:
			return node.Value, nil
		}
	default:
		return nil, errors.Newf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// numberValue keeps every decoded number as float64, matching what the
// standard JSON decoder produces for untyped values.
func numberValue(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		i, intErr := strconv.ParseInt(raw, 0, 64)
		if intErr != nil {
			return nil, errors.Wrapf(err, "invalid number %q", raw)
		}
		return float64(i), nil
	}
	return f, nil
}

// plain converts decoded values into map[string]any / []any trees.
func plain(value any) any {
	switch v := value.(type) {
	case *orderedMap:
		out := make(map[string]any, len(v.keys))
		for _, key := range v.keys {
			out[key] = plain(v.values[key])
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func nodeFromMap(obj *orderedMap, at string) (*Node, error) {
	node := &Node{}
	for _, key := range obj.keys {
		raw := obj.values[key]
		var err error
		switch key {
		case "type":
			node.Type, err = kindsValue(raw)
		case "title":
			node.Title, err = stringValue(raw)
		case "description":
			node.Description, err = stringValue(raw)
		case "default":
			node.Default = plain(raw)
		case "properties":
			node.Properties, err = propertiesValue(raw, at+"/properties")
		case "items":
			node.Items, err = itemsValue(raw, at+"/items")
		case "required":
			if b, ok := raw.(bool); ok {
				node.Required = b
			} else {
				node.setExtra(key, plain(raw))
			}
		case "minimum":
			node.Minimum, err = floatValue(raw)
		case "maximum":
			node.Maximum, err = floatValue(raw)
		case "minLength":
			node.MinLength, err = intValue(raw)
		case "maxLength":
			node.MaxLength, err = intValue(raw)
		case "pattern":
			node.Pattern, err = stringValue(raw)
		case "enum":
			list, ok := raw.([]any)
			if !ok {
				err = errors.New("must be a list")
				break
			}
			node.Enum = plain(list).([]any)
		case "format":
			node.Format, err = stringValue(raw)
		case "widget":
			node.Widget, err = stringValue(raw)
		case "ui":
			m, ok := plain(raw).(map[string]any)
			if !ok {
				err = errors.New("must be an object")
				break
			}
			node.UI = m
		default:
			node.setExtra(key, plain(raw))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "schema: invalid %q at %s", key, at)
		}
	}
	return node, nil
}

func (n *Node) setExtra(key string, value any) {
	if n.Extra == nil {
		n.Extra = make(map[string]any)
	}
	n.Extra[key] = value
}

func propertiesValue(raw any, at string) (*Properties, error) {
	obj, ok := raw.(*orderedMap)
	if !ok {
		return nil, errors.New("must be an object")
	}
	props := &Properties{}
	for _, name := range obj.keys {
		childMap, ok := obj.values[name].(*orderedMap)
		if !ok {
			return nil, errors.Newf("property %q must be an object", name)
		}
		child, err := nodeFromMap(childMap, at+"/"+name)
		if err != nil {
			return nil, err
		}
		props.Set(name, child)
	}
	return props, nil
}

func itemsValue(raw any, at string) (*Node, error) {
	switch v := raw.(type) {
	case *orderedMap:
		return nodeFromMap(v, at)
	case []any:
		// Tuple-style items keep only the first entry; arrays are not
		// validated.
		if len(v) == 0 {
			return nil, nil
		}
		first, ok := v[0].(*orderedMap)
		if !ok {
			return nil, errors.New("must be an object or a list of objects")
		}
		return nodeFromMap(first, at+"/0")
	default:
		return nil, errors.New("must be an object or a list of objects")
	}
}

func kindsValue(raw any) (Kinds, error) {
	switch v := raw.(type) {
	case string:
		return kindsFromStrings(v), nil
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("must be a string or a list of strings")
			}
			values = append(values, s)
		}
		return kindsFromStrings(values...), nil
	default:
		return nil, errors.New("must be a string or a list of strings")
	}
}

func stringValue(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errors.New("must be a string")
	}
	return s, nil
}

func floatValue(raw any) (*float64, error) {
	f, ok := raw.(float64)
	if !ok {
		return nil, errors.New("must be a number")
	}
	return &f, nil
}

func intValue(raw any) (*int, error) {
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) || f < 0 {
		return nil, errors.New("must be a non-negative integer")
	}
	i := int(f)
	return &i, nil
}

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
