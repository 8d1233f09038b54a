// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Helpers fail the test on error to keep call sites short.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// LoadDocument reads a fixture into a schema.Document with a file source.
func LoadDocument(t testing.TB, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, errors.Wrap(err, "testsupport: read document")
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, errors.Wrap(err, "testsupport: new document")
	}
	return doc, nil
}

// MustLoadSchema reads and parses a JSON or YAML schema fixture.
func MustLoadSchema(t testing.TB, path string) *schema.Node {
	t.Helper()

	root, err := schema.Parse(LoadDocument(t, path))
	if err != nil {
		t.Fatalf("parse schema %s: %v", path, err)
	}
	return root
}

// MustLoadValues reads a JSON, YAML or TOML value tree fixture.
func MustLoadValues(t testing.TB, path string) map[string]any {
	t.Helper()

	values, err := loader.New(loader.Options{}).LoadValues(Context(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load values %s: %v", path, err)
	}
	return values
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteGolden(t testing.TB, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGoldenJSON diffs got against the JSON golden at path after passing
// got through a JSON round trip, so numeric types and map ordering do not
// matter. An empty string means they match.
func CompareGoldenJSON(t testing.TB, path string, got any) string {
	t.Helper()

	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	return cmp.Diff(want, normalized)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
