// Package schema models declarative form schemas: a tree of Nodes describing
// kinds, nesting, constraints, enumerations and rendering hints.
//
// Documents are decoded from JSON (github.com/goccy/go-json token stream) or
// YAML (gopkg.in/yaml.v3 node tree) so that property declaration order is
// preserved; validation and rendering both follow that order. Read-only
// accessors (FieldKind, IsRequired, DefaultValue, Label, Walk) never mutate a
// node and are safe to call concurrently.
package schema
