package validation

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formschema/pkg/fieldpath"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Interface is implemented by anything that can check a value tree and a
// single field against a schema. The form controller accepts any
// implementation; *Validator is the built-in one.
type Interface interface {
	Validate(values map[string]any, root *schema.Node) Errors
	ValidateValue(value any, node *schema.Node, path string) Errors
}

// Validator applies per-kind constraint checks. It holds no per-call state
// and is safe for concurrent use; compiled patterns are cached.
type Validator struct {
	messages Catalog
	patterns sync.Map
}

// Option customises a Validator.
type Option func(*Validator)

// WithMessages swaps the message catalog. A nil catalog keeps the default.
func WithMessages(catalog Catalog) Option {
	return func(v *Validator) {
		if catalog != nil {
			v.messages = catalog
		}
	}
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{messages: EnglishCatalog()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

var _ Interface = (*Validator)(nil)

var defaultValidator = New()

// ValidateValue checks one value with the default validator.
func ValidateValue(value any, node *schema.Node, path string) Errors {
	return defaultValidator.ValidateValue(value, node, path)
}

// ValidateTree checks a whole value tree with the default validator.
func ValidateTree(values map[string]any, root *schema.Node) Errors {
	return defaultValidator.Validate(values, root)
}

// ValidateValue checks value against node and tags every error with path.
// Booleans, arrays, objects and unknown kinds never produce errors here.
func (v *Validator) ValidateValue(value any, node *schema.Node, path string) Errors {
	if node == nil {
		return nil
	}
	switch kind := schema.FieldKind(node); kind {
	case schema.KindString:
		return v.validateString(value, node, path)
	case schema.KindNumber, schema.KindInteger:
		return v.validateNumber(value, node, path, kind == schema.KindInteger)
	default:
		return nil
	}
}

// Validate walks root's properties in declaration order. Object children
// that declare properties are descended into; every other child is checked
// with ValidateValue. A missing or non-mapping value under an object is
// walked as an empty mapping. Roots that are not objects yield no errors.
func (v *Validator) Validate(values map[string]any, root *schema.Node) Errors {
	if root == nil || schema.FieldKind(root) != schema.KindObject {
		return nil
	}
	var errs Errors
	v.validateObject(values, root, "", &errs)
	return errs
}

func (v *Validator) validateObject(values map[string]any, node *schema.Node, base string, errs *Errors) {
	for _, prop := range node.Properties.All() {
		if prop.Node == nil {
			continue
		}
		path := fieldpath.Join(base, prop.Name)
		value := values[prop.Name]

		if schema.FieldKind(prop.Node) == schema.KindObject && prop.Node.Properties.Len() > 0 {
			nested, _ := value.(map[string]any)
			v.validateObject(nested, prop.Node, path, errs)
			continue
		}
		*errs = append(*errs, v.ValidateValue(value, prop.Node, path)...)
	}
}

func (v *Validator) validateString(value any, node *schema.Node, path string) Errors {
	var errs Errors
	if value == nil || value == "" {
		if node.Required {
			errs = append(errs, v.newError(CodeRequired, path, nil))
		}
		return errs
	}

	s, ok := value.(string)
	if !ok {
		return append(errs, v.newError(CodeInvalidType, path, map[string]any{"expected": "string"}))
	}

	length := utf8.RuneCountInString(s)
	if node.MinLength != nil && length < *node.MinLength {
		errs = append(errs, v.newError(CodeMinLength, path, map[string]any{"min": *node.MinLength, "actual": length}))
	}
	if node.MaxLength != nil && length > *node.MaxLength {
		errs = append(errs, v.newError(CodeMaxLength, path, map[string]any{"max": *node.MaxLength, "actual": length}))
	}
	if node.Pattern != "" {
		re, err := v.compile(node.Pattern)
		switch {
		case err != nil:
			errs = append(errs, v.newError(CodeInvalidPattern, path, map[string]any{"pattern": node.Pattern, "error": err.Error()}))
		case !re.MatchString(s):
			errs = append(errs, v.newError(CodePattern, path, map[string]any{"pattern": node.Pattern}))
		}
	}
	return errs
}

func (v *Validator) validateNumber(value any, node *schema.Node, path string, integer bool) Errors {
	var errs Errors
	if value == nil {
		if node.Required {
			errs = append(errs, v.newError(CodeRequired, path, nil))
		}
		return errs
	}

	n, ok := toFloat(value)
	if !ok {
		expected := "number"
		if integer {
			expected = "integer"
		}
		return append(errs, v.newError(CodeInvalidType, path, map[string]any{"expected": expected}))
	}

	if node.Minimum != nil && n < *node.Minimum {
		errs = append(errs, v.newError(CodeMinimum, path, map[string]any{"min": formatBound(*node.Minimum), "actual": n}))
	}
	if node.Maximum != nil && n > *node.Maximum {
		errs = append(errs, v.newError(CodeMaximum, path, map[string]any{"max": formatBound(*node.Maximum), "actual": n}))
	}
	if integer && !isInteger(n) {
		errs = append(errs, v.newError(CodeInteger, path, map[string]any{"actual": n}))
	}
	return errs
}

func (v *Validator) newError(code Code, path string, params map[string]any) Error {
	messages := v.messages
	if messages == nil {
		messages = EnglishCatalog()
	}
	return Error{
		Path:    path,
		Message: messages.Message(code, path, params),
		Code:    code,
		Params:  params,
	}
}

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// compile caches compiled patterns, including failures. Patterns use RE2
// syntax and match anywhere in the value unless anchored.
func (v *Validator) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := v.patterns.Load(pattern); ok {
		entry := cached.(compiledPattern)
		return entry.re, entry.err
	}
	re, err := regexp.Compile(pattern)
	v.patterns.Store(pattern, compiledPattern{re: re, err: err})
	return re, err
}
