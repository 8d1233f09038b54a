package validation

import (
	"fmt"
	"strings"
)

// Code classifies a validation error for programmatic handling.
type Code string

const (
	CodeRequired       Code = "required"
	CodeMinLength      Code = "min_length"
	CodeMaxLength      Code = "max_length"
	CodePattern        Code = "pattern"
	CodeInvalidPattern Code = "invalid_pattern"
	CodeMinimum        Code = "minimum"
	CodeMaximum        Code = "maximum"
	CodeInteger        Code = "integer"
	CodeInvalidType    Code = "invalid_type"
)

// Error is one constraint violation. Path is the dotted address of the field
// that produced it.
type Error struct {
	Path    string         `json:"path" yaml:"path"`
	Message string         `json:"message" yaml:"message"`
	Code    Code           `json:"code,omitempty" yaml:"code,omitempty"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Errors is an ordered list of validation errors. Order follows schema
// declaration order, then check order within a field.
type Errors []Error

// Error summarizes the first few errors so an Errors value can travel as an
// error.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	limit := len(errs)
	if limit > maxShown {
		limit = maxShown
	}
	for i := 0; i < limit; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(errs[i].Message)
	}
	if len(errs) > limit {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

// Err returns nil when there are no errors, errs otherwise.
func (errs Errors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ForPath returns the errors reported exactly at path.
func (errs Errors) ForPath(path string) Errors {
	var out Errors
	for _, err := range errs {
		if err.Path == path {
			out = append(out, err)
		}
	}
	return out
}

// Under returns the errors at path followed by every error nested below it.
func (errs Errors) Under(path string) Errors {
	out := errs.ForPath(path)
	prefix := path + "."
	for _, err := range errs {
		if strings.HasPrefix(err.Path, prefix) {
			out = append(out, err)
		}
	}
	return out
}

// First returns the first error reported at path.
func (errs Errors) First(path string) (Error, bool) {
	for _, err := range errs {
		if err.Path == path {
			return err, true
		}
	}
	return Error{}, false
}

// ByPath groups errors by path, keeping their relative order.
func (errs Errors) ByPath() map[string]Errors {
	out := make(map[string]Errors)
	for _, err := range errs {
		out[err.Path] = append(out[err.Path], err)
	}
	return out
}

// Paths returns each distinct path in order of first appearance.
func (errs Errors) Paths() []string {
	seen := make(map[string]struct{}, len(errs))
	var out []string
	for _, err := range errs {
		if _, ok := seen[err.Path]; ok {
			continue
		}
		seen[err.Path] = struct{}{}
		out = append(out, err.Path)
	}
	return out
}

// Messages returns the messages in order.
func (errs Errors) Messages() []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Message
	}
	return out
}
