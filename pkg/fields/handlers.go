package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// Handler interprets values of one field kind. Parse turns raw text (a
// terminal answer, a command-line argument) into a value of that kind; an
// empty answer parses to the kind's "absent" value. Format renders a value
// back to text for prompts and listings.
type Handler interface {
	Name() string
	Parse(raw string) (any, error)
	Format(value any) string
}

type stringHandler struct{}

// String returns the handler for string fields. Text is kept verbatim.
func String() Handler { return stringHandler{} }

func (stringHandler) Name() string { return "text" }

func (stringHandler) Parse(raw string) (any, error) {
	return raw, nil
}

func (stringHandler) Format(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

type numberHandler struct{}

// Number returns the handler shared by number and integer fields. Parsed
// values are float64; integer-ness is left to validation.
func Number() Handler { return numberHandler{} }

func (numberHandler) Name() string { return "number" }

func (numberHandler) Parse(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, errors.Newf("fields: %q is not a number", raw)
	}
	return f, nil
}

func (numberHandler) Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

type booleanHandler struct{}

// Boolean returns the handler for boolean fields. Besides the forms accepted
// by strconv.ParseBool it understands yes/no, y/n and on/off.
func Boolean() Handler { return booleanHandler{} }

func (booleanHandler) Name() string { return "checkbox" }

func (booleanHandler) Parse(raw string) (any, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "":
		return false, nil
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, errors.Newf("fields: %q is not a boolean", raw)
	}
	return b, nil
}

func (booleanHandler) Format(value any) string {
	if b, ok := value.(bool); ok {
		return strconv.FormatBool(b)
	}
	return "false"
}

type objectHandler struct{}

// Object returns the handler for object fields. Raw input is a JSON object.
func Object() Handler { return objectHandler{} }

func (objectHandler) Name() string { return "fieldset" }

func (objectHandler) Parse(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, errors.Wrap(err, "fields: object value must be a JSON object")
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func (objectHandler) Format(value any) string {
	if value == nil {
		return "{}"
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
