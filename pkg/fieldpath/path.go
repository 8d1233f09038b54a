package fieldpath

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNilTree is returned when Set is handed a nil root mapping.
	ErrNilTree = errors.New("fieldpath: value tree is nil")
	// ErrEmptyPath is returned when Set is handed an empty path.
	ErrEmptyPath = errors.New("fieldpath: path is empty")
	// ErrPathConflict is returned when an intermediate segment already holds a
	// value that is not a mapping.
	ErrPathConflict = errors.New("fieldpath: intermediate value is not a mapping")
)

// Separator joins path segments.
const Separator = "."

// Split breaks a dotted path into its segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// Join builds a dotted path, skipping empty segments so that joining onto the
// root ("") yields the bare child name.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, Separator)
}

// Parent returns everything before the last segment, or "" for a top-level
// path.
func Parent(path string) string {
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Get resolves path inside tree. The boolean is false as soon as a segment is
// missing or an intermediate value is not a mapping.
func Get(tree map[string]any, path string) (any, bool) {
	if tree == nil || path == "" {
		return nil, false
	}
	var current any = tree
	for _, segment := range Split(path) {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at path, mutating tree in place. Missing or nil
// intermediate segments are replaced with fresh mappings; siblings along the
// way are left untouched.
func Set(tree map[string]any, path string, value any) error {
	if tree == nil {
		return ErrNilTree
	}
	if path == "" {
		return ErrEmptyPath
	}

	segments := Split(path)
	current := tree
	for i, segment := range segments[:len(segments)-1] {
		next, exists := current[segment]
		if !exists || next == nil {
			child := make(map[string]any)
			current[segment] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return errors.Wrapf(ErrPathConflict, "set %q at %q", path, Join(segments[:i+1]...))
		}
		current = child
	}
	current[segments[len(segments)-1]] = value
	return nil
}

// Clone deep-copies mappings and slices; scalars are shared.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = Clone(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = Clone(v)
		}
		return clone
	default:
		return typed
	}
}

// CloneTree deep-copies a value tree. A nil tree yields an empty mapping.
func CloneTree(tree map[string]any) map[string]any {
	if tree == nil {
		return make(map[string]any)
	}
	return Clone(tree).(map[string]any)
}
