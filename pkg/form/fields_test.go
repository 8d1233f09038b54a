package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestFields_Descriptors(t *testing.T) {
	c := newController(t, WithInitialValues(map[string]any{"address": map[string]any{"city": "Paris"}}))
	if _, err := c.Change("name", "A"); err != nil {
		t.Fatalf("change: %v", err)
	}

	all := Flatten(c.Fields())
	paths := make([]string, len(all))
	for i, field := range all {
		paths[i] = field.Path
	}
	want := []string{"name", "address", "address.city", "address.zip", "age", "tags"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	byPath := make(map[string]Field, len(all))
	for _, field := range all {
		byPath[field.Path] = field
	}

	name := byPath["name"]
	if name.Label != "Full name" || !name.Required || name.Widget != "text" {
		t.Fatalf("unexpected name descriptor: %+v", name)
	}
	if name.Value != "A" || name.Error != "name should be at least 2 characters" || !name.Highlighted {
		t.Fatalf("unexpected name state: value=%v error=%q highlighted=%v", name.Value, name.Error, name.Highlighted)
	}

	address := byPath["address"]
	if address.Kind != schema.KindObject || len(address.Children) != 2 || address.Widget != "fieldset" {
		t.Fatalf("unexpected address descriptor: %+v", address)
	}
	if byPath["address.city"].Value != "Paris" {
		t.Fatalf("expected nested value, got %v", byPath["address.city"].Value)
	}
	if byPath["address.zip"].Value != "" {
		t.Fatalf("expected string default for missing value, got %v", byPath["address.zip"].Value)
	}
	if byPath["age"].Value != nil || byPath["age"].Widget != "number" {
		t.Fatalf("unexpected age descriptor: %+v", byPath["age"])
	}
}

func TestFields_UnsupportedKind(t *testing.T) {
	c := newController(t)
	var tags Field
	for _, field := range c.Fields() {
		if field.Name == "tags" {
			tags = field
		}
	}
	if tags.Supported {
		t.Fatalf("array fields should be unsupported")
	}
	if tags.Diagnostic != "Unsupported field type: array" {
		t.Fatalf("unexpected diagnostic %q", tags.Diagnostic)
	}
}
