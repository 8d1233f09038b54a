package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestDecodeValues_Formats(t *testing.T) {
	want := map[string]any{
		"name": "Ada",
		"age":  float64(36),
		"address": map[string]any{
			"city": "London",
		},
	}

	cases := map[ValuesFormat]string{
		ValuesJSON: `{"name":"Ada","age":36,"address":{"city":"London"}}`,
		ValuesYAML: "name: Ada\nage: 36\naddress:\n  city: London\n",
		ValuesTOML: "name = \"Ada\"\nage = 36\n\n[address]\ncity = \"London\"\n",
	}
	for format, payload := range cases {
		got, err := DecodeValues(format, []byte(payload))
		require.NoError(t, err, format)
		assert.Equal(t, want, got, format)
	}
}

func TestDecodeValues_Empty(t *testing.T) {
	got, err := DecodeValues(ValuesYAML, []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeValues_Invalid(t *testing.T) {
	_, err := DecodeValues(ValuesJSON, []byte(`{"name":`))
	assert.Error(t, err)

	_, err = DecodeValues("xml", []byte(`<a/>`))
	assert.Error(t, err)
}

func TestDetectValuesFormat(t *testing.T) {
	assert.Equal(t, ValuesTOML, DetectValuesFormat("values.toml", nil))
	assert.Equal(t, ValuesYAML, DetectValuesFormat("values.yml", nil))
	assert.Equal(t, ValuesJSON, DetectValuesFormat("-", []byte(` {"a":1}`)))
	assert.Equal(t, ValuesYAML, DetectValuesFormat("-", []byte("a: 1")))
}

func TestLoadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"Ada\"\n"), 0o600))

	got, err := New(Options{}).LoadValues(context.Background(), schema.SourceFromFile(path))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, got)
}
