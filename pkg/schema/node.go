package schema

// Node describes one field or one nesting level of a form schema. Nodes are
// built once (by hand or by Parse) and treated as immutable afterwards; the
// engine never mutates a Node it is handed.
//
// Required is a flag on the node itself rather than a list of names on the
// parent object. A parent-level `required: [...]` list found in a document is
// not interpreted and is kept verbatim in Extra["required"].
type Node struct {
	Type        Kinds
	Title       string
	Description string
	// Default is nil when the document declares no default.
	Default    any
	Properties *Properties
	Items      *Node
	Required   bool
	Minimum    *float64
	Maximum    *float64
	MinLength  *int
	MaxLength  *int
	Pattern    string
	Enum       []any
	// Format is a rendering hint ("email", "date", "textarea"); validation
	// ignores it.
	Format string
	Widget string
	UI     map[string]any
	// Extra keeps every key the model does not know about.
	Extra map[string]any
}

// Property pairs a child name with its schema node.
type Property struct {
	Name string
	Node *Node
}

// Prop is shorthand for building a Property.
func Prop(name string, node *Node) Property {
	return Property{Name: name, Node: node}
}

// Properties is an insertion-ordered mapping from child name to schema node.
// The zero value is an empty mapping; a nil *Properties behaves the same for
// every read accessor.
type Properties struct {
	entries []Property
	index   map[string]int
}

// NewProperties builds an ordered property set. Later duplicates replace the
// earlier node but keep the earlier position.
func NewProperties(props ...Property) *Properties {
	out := &Properties{}
	for _, prop := range props {
		out.Set(prop.Name, prop.Node)
	}
	return out
}

// Set adds or replaces a child. Intended for construction only.
func (p *Properties) Set(name string, node *Node) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if idx, ok := p.index[name]; ok {
		p.entries[idx].Node = node
		return
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, Property{Name: name, Node: node})
}

// Get returns the child node registered under name.
func (p *Properties) Get(name string) (*Node, bool) {
	if p == nil || p.index == nil {
		return nil, false
	}
	idx, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.entries[idx].Node, true
}

// Len reports the number of children.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Names returns child names in declaration order.
func (p *Properties) Names() []string {
	if p.Len() == 0 {
		return nil
	}
	names := make([]string, len(p.entries))
	for i, entry := range p.entries {
		names[i] = entry.Name
	}
	return names
}

// All returns a copy of the children in declaration order.
func (p *Properties) All() []Property {
	if p.Len() == 0 {
		return nil
	}
	return append([]Property(nil), p.entries...)
}

// Object builds an object node with the given children.
func Object(props ...Property) *Node {
	return &Node{Type: Of(KindObject), Properties: NewProperties(props...)}
}

// Float returns a pointer to v, handy for Minimum/Maximum literals.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, handy for MinLength/MaxLength literals.
func Int(v int) *int {
	return &v
}
