package terminal

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ContentType reports the media type produced by Serialize.
func (f *Filler) ContentType() string {
	switch f.format {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatForm:
		return "application/x-www-form-urlencoded"
	case OutputFormatPretty:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Serialize renders values in the configured output format.
func (f *Filler) Serialize(values map[string]any) ([]byte, error) {
	return Serialize(f.format, values)
}

// Serialize renders values as json, yaml, form-urlencoded or pretty text
// (one sorted "path=value" line per leaf).
func Serialize(format OutputFormat, values map[string]any) ([]byte, error) {
	if values == nil {
		values = map[string]any{}
	}
	switch format {
	case OutputFormatJSON, "":
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "terminal: encode json")
		}
		return append(data, '\n'), nil
	case OutputFormatYAML:
		data, err := yaml.Marshal(values)
		if err != nil {
			return nil, errors.Wrap(err, "terminal: encode yaml")
		}
		return data, nil
	case OutputFormatForm:
		out := url.Values{}
		flatten("", values, func(path string, value any) {
			out.Add(path, fmt.Sprint(value))
		})
		return []byte(out.Encode()), nil
	case OutputFormatPretty:
		var lines []string
		flatten("", values, func(path string, value any) {
			lines = append(lines, fmt.Sprintf("%s=%v", path, value))
		})
		sort.Strings(lines)
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	default:
		return nil, errors.Newf("terminal: unsupported output format %q", format)
	}
}

func flatten(prefix string, value any, emit func(path string, value any)) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, item, emit)
		}
	case []any:
		for idx, item := range v {
			flatten(fmt.Sprintf("%s[%d]", prefix, idx), item, emit)
		}
	default:
		if prefix != "" {
			emit(prefix, v)
		}
	}
}
