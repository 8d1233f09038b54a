package loader

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ValuesFormat is the encoding of a value tree document.
type ValuesFormat string

const (
	ValuesJSON ValuesFormat = "json"
	ValuesYAML ValuesFormat = "yaml"
	ValuesTOML ValuesFormat = "toml"
)

// DetectValuesFormat picks the encoding from the file extension, falling back
// to JSON for payloads starting with '{' and YAML otherwise.
func DetectValuesFormat(location string, data []byte) ValuesFormat {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json":
		return ValuesJSON
	case ".yaml", ".yml":
		return ValuesYAML
	case ".toml":
		return ValuesTOML
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return ValuesJSON
	}
	return ValuesYAML
}

// DecodeValues decodes a value tree. Numbers become float64 regardless of
// the encoding.
func DecodeValues(format ValuesFormat, data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	var err error
	switch format {
	case ValuesJSON:
		err = json.Unmarshal(data, &out)
	case ValuesYAML:
		err = yaml.Unmarshal(data, &out)
	case ValuesTOML:
		err = toml.Unmarshal(data, &out)
	default:
		return nil, errors.Newf("loader: unsupported values format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loader: decode %s values", format)
	}
	normalized, _ := normalize(out).(map[string]any)
	if normalized == nil {
		normalized = make(map[string]any)
	}
	return normalized, nil
}

// LoadValues loads and decodes a value tree document.
func (l *Loader) LoadValues(ctx context.Context, src schema.Source) (map[string]any, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	raw := doc.Raw()
	return DecodeValues(DetectValuesFormat(doc.Location(), raw), raw)
}

// normalize converts YAML/TOML specific shapes into map[string]any trees
// holding float64 numbers.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[toString(key)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.Trim(string(data), `"`)
}
