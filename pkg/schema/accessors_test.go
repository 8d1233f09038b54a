package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestFieldKind(t *testing.T) {
	cases := []struct {
		name string
		node *schema.Node
		want schema.Kind
	}{
		{name: "absent type is object", node: &schema.Node{}, want: schema.KindObject},
		{name: "nil node is object", node: nil, want: schema.KindObject},
		{name: "single type", node: &schema.Node{Type: schema.Of(schema.KindString)}, want: schema.KindString},
		{name: "first of many", node: &schema.Node{Type: schema.Kinds{schema.KindInteger, "null"}}, want: schema.KindInteger},
		{name: "unknown kind verbatim", node: &schema.Node{Type: schema.Kinds{"date-range"}}, want: "date-range"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := schema.FieldKind(tc.node); got != tc.want {
				t.Fatalf("FieldKind: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsRequired_NodeLocalFlag(t *testing.T) {
	parent := schema.Object(
		schema.Prop("name", &schema.Node{Type: schema.Of(schema.KindString), Required: true}),
		schema.Prop("bio", &schema.Node{Type: schema.Of(schema.KindString)}),
	)

	if !schema.IsRequired("name", parent) {
		t.Fatalf("expected name to be required")
	}
	if schema.IsRequired("bio", parent) {
		t.Fatalf("expected bio to be optional")
	}
	if schema.IsRequired("missing", parent) {
		t.Fatalf("expected missing child to report false")
	}
	if schema.IsRequired("name", nil) {
		t.Fatalf("expected nil parent to report false")
	}
}

func TestDefaultValue(t *testing.T) {
	cases := []struct {
		name string
		node *schema.Node
		want any
	}{
		{name: "declared default wins", node: &schema.Node{Type: schema.Of(schema.KindString), Default: "hi"}, want: "hi"},
		{name: "string", node: &schema.Node{Type: schema.Of(schema.KindString)}, want: ""},
		{name: "number", node: &schema.Node{Type: schema.Of(schema.KindNumber)}, want: nil},
		{name: "integer", node: &schema.Node{Type: schema.Of(schema.KindInteger)}, want: nil},
		{name: "boolean", node: &schema.Node{Type: schema.Of(schema.KindBoolean)}, want: false},
		{name: "array", node: &schema.Node{Type: schema.Of(schema.KindArray)}, want: []any{}},
		{name: "object", node: &schema.Node{}, want: map[string]any{}},
		{name: "unknown", node: &schema.Node{Type: schema.Kinds{"date-range"}}, want: nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, schema.DefaultValue(tc.node)); diff != "" {
				t.Fatalf("DefaultValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := schema.Label("age", &schema.Node{Title: "Age"}); got != "Age" {
		t.Fatalf("expected title, got %q", got)
	}
	if got := schema.Label("age", &schema.Node{}); got != "age" {
		t.Fatalf("expected name fallback, got %q", got)
	}
}

func TestWalk_DeclarationOrder(t *testing.T) {
	root := schema.Object(
		schema.Prop("obj", schema.Object(
			schema.Prop("name", &schema.Node{Type: schema.Of(schema.KindString)}),
			schema.Prop("nick", &schema.Node{Type: schema.Of(schema.KindString)}),
		)),
		schema.Prop("age", &schema.Node{Type: schema.Of(schema.KindInteger)}),
	)

	var paths []string
	err := schema.Walk(root, func(path, _ string, _ *schema.Node) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{"obj", "obj.name", "obj.nick", "age"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestProperties_DuplicateKeepsPosition(t *testing.T) {
	first := &schema.Node{Title: "first"}
	second := &schema.Node{Title: "second"}
	props := schema.NewProperties(
		schema.Prop("a", first),
		schema.Prop("b", &schema.Node{}),
		schema.Prop("a", second),
	)

	if diff := cmp.Diff([]string{"a", "b"}, props.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	got, ok := props.Get("a")
	if !ok || got != second {
		t.Fatalf("expected later duplicate to replace node")
	}

	var nilProps *schema.Properties
	if nilProps.Len() != 0 || nilProps.Names() != nil {
		t.Fatalf("nil properties should behave as empty")
	}
	if _, ok := nilProps.Get("a"); ok {
		t.Fatalf("nil properties should not resolve children")
	}
}
