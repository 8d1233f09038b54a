package fieldpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetGet_RoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		value any
	}{
		{name: "top level", path: "name", value: "Ada"},
		{name: "two segments", path: "address.city", value: "Paris"},
		{name: "deep", path: "a.b.c.d", value: 42.0},
		{name: "nil value", path: "a.b", value: nil},
		{name: "map value", path: "meta", value: map[string]any{"k": "v"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tree := map[string]any{}
			if err := Set(tree, tc.path, tc.value); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok := Get(tree, tc.path)
			if !ok {
				t.Fatalf("expected %q to resolve", tc.path)
			}
			if diff := cmp.Diff(tc.value, got); diff != "" {
				t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSet_NonDestructive(t *testing.T) {
	tree := map[string]any{"a": map[string]any{"c": 5}}
	if err := Set(tree, "a.b", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}

	want := map[string]any{"a": map[string]any{"b": "x", "c": 5}}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_MutatesInPlace(t *testing.T) {
	inner := map[string]any{}
	tree := map[string]any{"a": inner}
	if err := Set(tree, "a.b", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if inner["b"] != 1 {
		t.Fatalf("expected existing nested mapping to be reused, got %v", inner)
	}
}

func TestSet_ReplacesNilIntermediate(t *testing.T) {
	tree := map[string]any{"a": nil}
	if err := Set(tree, "a.b", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := Get(tree, "a.b"); got != true {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestSet_Errors(t *testing.T) {
	if err := Set(nil, "a", 1); !errors.Is(err, ErrNilTree) {
		t.Fatalf("expected ErrNilTree, got %v", err)
	}
	if err := Set(map[string]any{}, "", 1); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}

	tree := map[string]any{"a": "scalar"}
	err := Set(tree, "a.b", 1)
	if !errors.Is(err, ErrPathConflict) {
		t.Fatalf("expected ErrPathConflict, got %v", err)
	}
	if tree["a"] != "scalar" {
		t.Fatalf("conflicting set must not clobber the scalar, got %v", tree["a"])
	}
}

func TestGet_Misses(t *testing.T) {
	tree := map[string]any{
		"a":    map[string]any{"b": 1},
		"s":    "text",
		"list": []any{map[string]any{"x": 1}},
	}
	for _, path := range []string{"", "missing", "a.c", "a.b.c", "s.x", "list.0.x"} {
		if got, ok := Get(tree, path); ok {
			t.Fatalf("expected %q to miss, got %v", path, got)
		}
	}
	if _, ok := Get(nil, "a"); ok {
		t.Fatalf("nil tree should miss")
	}
}

func TestJoinSplitParent(t *testing.T) {
	if got := Join("", "name"); got != "name" {
		t.Fatalf("Join root: got %q", got)
	}
	if got := Join("address", "city"); got != "address.city" {
		t.Fatalf("Join nested: got %q", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, Split("a.b.c")); diff != "" {
		t.Fatalf("Split mismatch (-want +got):\n%s", diff)
	}
	if Split("") != nil {
		t.Fatalf("Split of empty path should be nil")
	}
	if got := Parent("a.b.c"); got != "a.b" {
		t.Fatalf("Parent: got %q", got)
	}
	if got := Parent("a"); got != "" {
		t.Fatalf("Parent of top-level: got %q", got)
	}
}

func TestCloneTree_IsDeep(t *testing.T) {
	src := map[string]any{
		"a":    map[string]any{"b": 1},
		"tags": []any{"x", map[string]any{"y": 2}},
	}
	clone := CloneTree(src)
	if diff := cmp.Diff(src, clone); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	clone["a"].(map[string]any)["b"] = 99
	clone["tags"].([]any)[1].(map[string]any)["y"] = 99
	if src["a"].(map[string]any)["b"] != 1 {
		t.Fatalf("nested map shared with clone")
	}
	if src["tags"].([]any)[1].(map[string]any)["y"] != 2 {
		t.Fatalf("nested slice shared with clone")
	}

	if CloneTree(nil) == nil {
		t.Fatalf("CloneTree(nil) should return an empty mapping")
	}
}
