package fieldpath

import "github.com/goliatone/go-formschema/pkg/schema"

// Location is the schema node a path resolved to, plus the path of the
// object that declares it ("" at the root).
type Location struct {
	Node       *schema.Node
	ParentPath string
}

// SchemaAt walks root's properties along path. Every segment but the last must
// land on an object node that declares the next child; otherwise the lookup
// misses and callers should treat the field as having no schema.
func SchemaAt(root *schema.Node, path string) (Location, bool) {
	if root == nil || path == "" {
		return Location{}, false
	}

	segments := Split(path)
	current := root
	for i, segment := range segments {
		if schema.FieldKind(current) != schema.KindObject {
			return Location{}, false
		}
		child, ok := current.Properties.Get(segment)
		if !ok || child == nil {
			return Location{}, false
		}
		if i == len(segments)-1 {
			return Location{Node: child, ParentPath: Join(segments[:i]...)}, true
		}
		current = child
	}
	return Location{}, false
}
