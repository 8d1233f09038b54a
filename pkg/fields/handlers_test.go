package fields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHandlers_Parse(t *testing.T) {
	cases := []struct {
		name    string
		handler Handler
		raw     string
		want    any
		wantErr bool
	}{
		{name: "string verbatim", handler: String(), raw: " Ada ", want: " Ada "},
		{name: "string empty", handler: String(), raw: "", want: ""},
		{name: "number", handler: Number(), raw: " 25.5 ", want: 25.5},
		{name: "number empty is absent", handler: Number(), raw: "", want: nil},
		{name: "number invalid", handler: Number(), raw: "abc", wantErr: true},
		{name: "boolean true", handler: Boolean(), raw: "true", want: true},
		{name: "boolean yes", handler: Boolean(), raw: "Yes", want: true},
		{name: "boolean off", handler: Boolean(), raw: "off", want: false},
		{name: "boolean empty", handler: Boolean(), raw: "", want: false},
		{name: "boolean invalid", handler: Boolean(), raw: "maybe", wantErr: true},
		{name: "object json", handler: Object(), raw: `{"city":"Paris"}`, want: map[string]any{"city": "Paris"}},
		{name: "object empty", handler: Object(), raw: "", want: map[string]any{}},
		{name: "object invalid", handler: Object(), raw: `[1]`, wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.handler.Parse(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlers_Format(t *testing.T) {
	cases := []struct {
		name    string
		handler Handler
		value   any
		want    string
	}{
		{name: "string", handler: String(), value: "Ada", want: "Ada"},
		{name: "string nil", handler: String(), value: nil, want: ""},
		{name: "number integral", handler: Number(), value: 42.0, want: "42"},
		{name: "number fraction", handler: Number(), value: 25.5, want: "25.5"},
		{name: "number int", handler: Number(), value: 7, want: "7"},
		{name: "number nil", handler: Number(), value: nil, want: ""},
		{name: "boolean", handler: Boolean(), value: true, want: "true"},
		{name: "boolean non-bool", handler: Boolean(), value: "x", want: "false"},
		{name: "object", handler: Object(), value: map[string]any{"a": 1}, want: `{"a":1}`},
		{name: "object nil", handler: Object(), value: nil, want: "{}"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.handler.Format(tc.value); got != tc.want {
				t.Fatalf("format: want %q, got %q", tc.want, got)
			}
		})
	}
}
