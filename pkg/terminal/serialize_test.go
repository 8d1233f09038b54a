package terminal

import (
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	values := map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "Paris"},
	}

	cases := map[OutputFormat]string{
		OutputFormatPretty: "address.city=Paris\nname=Ada\n",
		OutputFormatForm:   "address.city=Paris&name=Ada",
		OutputFormatYAML:   "address:\n    city: Paris\nname: Ada\n",
		OutputFormatJSON:   "{\n  \"address\": {\n    \"city\": \"Paris\"\n  },\n  \"name\": \"Ada\"\n}\n",
	}
	for format, want := range cases {
		got, err := Serialize(format, values)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if string(got) != want {
			t.Fatalf("%s: got %q, want %q", format, got, want)
		}
	}

	if _, err := Serialize("xml", values); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFiller_ContentType(t *testing.T) {
	f := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatYAML))
	if !strings.Contains(f.ContentType(), "yaml") {
		t.Fatalf("unexpected content type %q", f.ContentType())
	}
}
