package schema

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// MarshalJSON writes the node with its properties in declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	w := &objectWriter{}
	if len(n.Type) > 0 {
		w.field("type", n.Type)
	}
	if n.Title != "" {
		w.field("title", n.Title)
	}
	if n.Description != "" {
		w.field("description", n.Description)
	}
	if n.Default != nil {
		w.field("default", n.Default)
	}
	if n.Required {
		w.field("required", true)
	}
	if n.Properties != nil {
		w.field("properties", n.Properties)
	}
	if n.Items != nil {
		w.field("items", n.Items)
	}
	if n.Minimum != nil {
		w.field("minimum", *n.Minimum)
	}
	if n.Maximum != nil {
		w.field("maximum", *n.Maximum)
	}
	if n.MinLength != nil {
		w.field("minLength", *n.MinLength)
	}
	if n.MaxLength != nil {
		w.field("maxLength", *n.MaxLength)
	}
	if n.Pattern != "" {
		w.field("pattern", n.Pattern)
	}
	if len(n.Enum) > 0 {
		w.field("enum", n.Enum)
	}
	if n.Format != "" {
		w.field("format", n.Format)
	}
	if n.Widget != "" {
		w.field("widget", n.Widget)
	}
	if len(n.UI) > 0 {
		w.field("ui", n.UI)
	}
	keys := make([]string, 0, len(n.Extra))
	for key := range n.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.field(key, n.Extra[key])
	}
	return w.bytes()
}

// MarshalJSON writes the children as an object in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	for _, prop := range p.All() {
		w.field(prop.Name, prop.Node)
	}
	return w.bytes()
}

type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
