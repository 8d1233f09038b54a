package openapi

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// convert maps an OpenAPI schema onto a schema.Node. visiting guards against
// recursive component references; a cycle ends in a node that only records
// the $ref.
func convert(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) *schema.Node {
	if ref == nil {
		return &schema.Node{}
	}
	src := ref.Value
	if src == nil || visiting[src] {
		node := &schema.Node{}
		if ref.Ref != "" {
			node.Extra = map[string]any{"$ref": ref.Ref}
		}
		return node
	}
	visiting[src] = true
	defer delete(visiting, src)

	node := &schema.Node{
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
		Format:      src.Format,
	}
	if src.Type != nil {
		for _, kind := range src.Type.Slice() {
			node.Type = append(node.Type, schema.Kind(kind))
		}
	}
	if src.Min != nil {
		node.Minimum = schema.Float(*src.Min)
	}
	if src.Max != nil {
		node.Maximum = schema.Float(*src.Max)
	}
	if src.MinLength > 0 {
		node.MinLength = schema.Int(int(src.MinLength))
	}
	if src.MaxLength != nil {
		node.MaxLength = schema.Int(int(*src.MaxLength))
	}
	if len(src.Enum) > 0 {
		node.Enum = append([]any(nil), src.Enum...)
	}
	if src.Items != nil {
		node.Items = convert(src.Items, visiting)
	}

	props, required := collectProperties(src)
	if len(props) > 0 {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		node.Properties = schema.NewProperties()
		for _, name := range names {
			child := convert(props[name], visiting)
			if required[name] {
				child.Required = true
			}
			node.Properties.Set(name, child)
		}
	}

	for key, value := range src.Extensions {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		if key == "x-widget" {
			if widget, ok := value.(string); ok {
				node.Widget = widget
				continue
			}
		}
		if node.Extra == nil {
			node.Extra = make(map[string]any)
		}
		node.Extra[key] = value
	}
	return node
}

// collectProperties merges the schema's own properties with those of its
// allOf members. Later members do not override earlier declarations.
func collectProperties(src *openapi3.Schema) (openapi3.Schemas, map[string]bool) {
	props := make(openapi3.Schemas)
	required := make(map[string]bool)

	var merge func(s *openapi3.Schema, depth int)
	merge = func(s *openapi3.Schema, depth int) {
		if s == nil || depth > 8 {
			return
		}
		for name, prop := range s.Properties {
			if _, exists := props[name]; !exists {
				props[name] = prop
			}
		}
		for _, name := range s.Required {
			required[name] = true
		}
		for _, member := range s.AllOf {
			if member != nil {
				merge(member.Value, depth+1)
			}
		}
	}
	merge(src, 0)
	return props, required
}
