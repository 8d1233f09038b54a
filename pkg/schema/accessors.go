package schema

// IsRequired reports whether the child called name exists on parent and
// carries its own required flag.
func IsRequired(name string, parent *Node) bool {
	if parent == nil {
		return false
	}
	child, ok := parent.Properties.Get(name)
	if !ok || child == nil {
		return false
	}
	return child.Required
}

// DefaultValue returns the declared default of node, falling back to the
// zero value of its kind: "" for strings, false for booleans, an empty slice
// for arrays, an empty map for objects and nil for numbers and anything else.
func DefaultValue(node *Node) any {
	if node != nil && node.Default != nil {
		return node.Default
	}
	switch FieldKind(node) {
	case KindString:
		return ""
	case KindBoolean:
		return false
	case KindArray:
		return []any{}
	case KindObject:
		return map[string]any{}
	default:
		return nil
	}
}

// Label returns the display label for a child: its title, or the name.
func Label(name string, node *Node) string {
	if node != nil && node.Title != "" {
		return node.Title
	}
	return name
}

// WalkFunc is invoked for every property reached by Walk.
type WalkFunc func(path string, name string, node *Node) error

// Walk visits every property under root depth-first in declaration order.
// Object children are visited before their own children. Returning an error
// stops the walk.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil || fn == nil {
		return nil
	}
	return walk(root, "", fn)
}

func walk(node *Node, prefix string, fn WalkFunc) error {
	for _, prop := range node.Properties.All() {
		path := prop.Name
		if prefix != "" {
			path = prefix + "." + prop.Name
		}
		if err := fn(path, prop.Name, prop.Node); err != nil {
			return err
		}
		if prop.Node != nil && FieldKind(prop.Node) == KindObject && prop.Node.Properties.Len() > 0 {
			if err := walk(prop.Node, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
