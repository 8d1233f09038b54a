package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Kind is the declared primitive or structural category of a schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Kinds holds the declared `type` of a node. JSON and YAML documents may
// declare a single kind ("string") or an ordered list (["string", "null"]);
// both decode into Kinds. An empty Kinds means the type was omitted.
type Kinds []Kind

// Of is a convenience constructor for a single declared kind.
func Of(kind Kind) Kinds {
	return Kinds{kind}
}

// Primary returns the first declared kind, or "" when none was declared.
func (k Kinds) Primary() Kind {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// String renders the declared kinds the way they are written in documents.
func (k Kinds) String() string {
	parts := make([]string, len(k))
	for i, kind := range k {
		parts[i] = string(kind)
	}
	return strings.Join(parts, ",")
}

// MarshalJSON writes a single kind as a string and several as a list.
func (k Kinds) MarshalJSON() ([]byte, error) {
	switch len(k) {
	case 0:
		return []byte("null"), nil
	case 1:
		return marshalJSON(string(k[0]))
	default:
		return marshalJSON([]Kind(k))
	}
}

// UnmarshalJSON accepts a string or a list of strings.
func (k *Kinds) UnmarshalJSON(data []byte) error {
	var single string
	if err := unmarshalJSON(data, &single); err == nil {
		*k = kindsFromStrings(single)
		return nil
	}
	var many []string
	if err := unmarshalJSON(data, &many); err != nil {
		return errors.Wrap(err, "schema: type must be a string or a list of strings")
	}
	*k = kindsFromStrings(many...)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (k *Kinds) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*k = kindsFromStrings(node.Value)
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return errors.Wrap(err, "schema: type must be a string or a list of strings")
		}
		*k = kindsFromStrings(many...)
		return nil
	default:
		return errors.Newf("schema: type must be a string or a list of strings (line %d)", node.Line)
	}
}

func kindsFromStrings(values ...string) Kinds {
	out := make(Kinds, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, Kind(trimmed))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FieldKind resolves the effective kind of a node: an omitted type means
// object, a list of types uses its first entry, anything else is returned
// verbatim (including kinds the engine does not know about).
func FieldKind(node *Node) Kind {
	if node == nil || len(node.Type) == 0 {
		return KindObject
	}
	return node.Type.Primary()
}
