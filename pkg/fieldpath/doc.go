// Package fieldpath reads and writes values inside nested map[string]any trees
// using dotted paths ("address.city"), and resolves the schema node a path
// points at.
//
// Segments are separated by "." and cannot themselves contain a dot; there is
// no escaping rule. Only mappings are traversed: slices and scalars end a
// lookup.
package fieldpath
