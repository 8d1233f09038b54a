package validation

import "fmt"

// Catalog renders the human message for an error. params carries the same
// values stored on Error.Params ("min", "max", "pattern", "expected").
type Catalog interface {
	Message(code Code, path string, params map[string]any) string
}

// CatalogFunc adapts a function to Catalog.
type CatalogFunc func(code Code, path string, params map[string]any) string

// Message implements Catalog.
func (f CatalogFunc) Message(code Code, path string, params map[string]any) string {
	return f(code, path, params)
}

// EnglishCatalog returns the built-in message catalog.
func EnglishCatalog() Catalog {
	return englishCatalog{}
}

type englishCatalog struct{}

func (englishCatalog) Message(code Code, path string, params map[string]any) string {
	switch code {
	case CodeRequired:
		return fmt.Sprintf("%s is required", path)
	case CodeMinLength:
		return fmt.Sprintf("%s should be at least %v characters", path, params["min"])
	case CodeMaxLength:
		return fmt.Sprintf("%s should not exceed %v characters", path, params["max"])
	case CodePattern:
		return fmt.Sprintf("%s does not match pattern %v", path, params["pattern"])
	case CodeInvalidPattern:
		return fmt.Sprintf("%s has an invalid pattern %v", path, params["pattern"])
	case CodeMinimum:
		return fmt.Sprintf("%s should be greater than or equal to %v", path, params["min"])
	case CodeMaximum:
		return fmt.Sprintf("%s should be less than or equal to %v", path, params["max"])
	case CodeInteger:
		return fmt.Sprintf("%s should be an integer", path)
	case CodeInvalidType:
		return fmt.Sprintf("%s should be a %v", path, params["expected"])
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}
