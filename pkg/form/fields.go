package form

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/fieldpath"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Field describes one schema property as a renderer sees it: what to show,
// the current value and the errors to display next to it.
type Field struct {
	Name        string
	Path        string
	Label       string
	Description string
	Kind        schema.Kind
	// Widget is the node's explicit widget hint, or the handler name.
	Widget   string
	Format   string
	Enum     []any
	Required bool
	// Supported is false when no handler is registered for Kind; Diagnostic
	// then explains why the field cannot be edited.
	Supported   bool
	Diagnostic  string
	Value       any
	Errors      validation.Errors
	Error       string
	Highlighted bool
	Node        *schema.Node
	Children    []Field
}

// Fields builds descriptors for every property of the root schema in
// declaration order. Object properties that declare their own properties
// carry them as Children.
func (c *Controller) Fields() []Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.describe(c.root, "")
}

func (c *Controller) describe(parent *schema.Node, base string) []Field {
	props := parent.Properties.All()
	if len(props) == 0 {
		return nil
	}
	out := make([]Field, 0, len(props))
	for _, prop := range props {
		if prop.Node == nil {
			continue
		}
		path := fieldpath.Join(base, prop.Name)
		out = append(out, c.describeField(parent, prop.Name, path, prop.Node))
	}
	return out
}

func (c *Controller) describeField(parent *schema.Node, name, path string, node *schema.Node) Field {
	kind := schema.FieldKind(node)
	field := Field{
		Name:        name,
		Path:        path,
		Label:       schema.Label(name, node),
		Description: node.Description,
		Kind:        kind,
		Widget:      node.Widget,
		Format:      node.Format,
		Enum:        node.Enum,
		Required:    schema.IsRequired(name, parent),
		Node:        node,
	}

	handler, ok := c.registry.Resolve(kind)
	if !ok {
		field.Diagnostic = fmt.Sprintf("Unsupported field type: %s", kind)
		c.logger.Debug("form: unsupported field type", "path", path, "kind", kind)
	} else {
		field.Supported = true
		if field.Widget == "" {
			field.Widget = handler.Name()
		}
	}

	if value, found := fieldpath.Get(c.values, path); found {
		field.Value = fieldpath.Clone(value)
	} else {
		field.Value = schema.DefaultValue(node)
	}

	field.Errors = c.fieldErrors(path)
	if own := c.errors[path]; len(own) > 0 {
		field.Error = own[0].Message
	}
	field.Highlighted = c.highlighted(path)

	if kind == schema.KindObject && node.Properties.Len() > 0 {
		field.Children = c.describe(node, path)
	}
	return field
}

// Flatten lists fields depth-first, parents before their children.
func Flatten(fields []Field) []Field {
	var out []Field
	for _, field := range fields {
		out = append(out, field)
		out = append(out, Flatten(field.Children)...)
	}
	return out
}
