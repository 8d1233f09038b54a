package form

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/fieldpath"
	"github.com/goliatone/go-formschema/pkg/fields"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// ErrNilSchema is returned by New when no schema is supplied.
var ErrNilSchema = errors.New("form: schema is required")

// Controller owns a live value tree for one schema. Edits go through Change,
// which validates just the edited field; Submit validates the whole tree.
// Errors are kept per path so each field can show its own. All methods are
// safe for concurrent use; edits are serialized.
type Controller struct {
	mu sync.Mutex

	root      *schema.Node
	registry  *fields.Registry
	validator validation.Interface
	logger    *slog.Logger
	onChange  ChangeFunc
	onSubmit  SubmitFunc

	initial     map[string]any
	values      map[string]any
	errors      map[string]validation.Errors
	errorOrder  []string
	lastChanged string
}

// New builds a controller for root.
func New(root *schema.Node, opts ...Option) (*Controller, error) {
	if root == nil {
		return nil, ErrNilSchema
	}
	c := &Controller{
		root:      root,
		registry:  fields.NewDefaultRegistry(),
		validator: validation.New(),
		logger:    logging.NewDiscard(),
		initial:   make(map[string]any),
		errors:    make(map[string]validation.Errors),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.values = cloneValues(c.initial)
	return c, nil
}

// Schema returns the root schema node.
func (c *Controller) Schema() *schema.Node {
	return c.root
}

// Registry returns the kind registry used for descriptors.
func (c *Controller) Registry() *fields.Registry {
	return c.registry
}

// Change writes value at path, remembers path as the last edited field and
// revalidates that field alone. Paths without schema are stored but not
// validated. The returned errors are the field's new errors.
func (c *Controller) Change(path string, value any) (validation.Errors, error) {
	c.mu.Lock()

	if err := fieldpath.Set(c.values, path, value); err != nil {
		c.mu.Unlock()
		return nil, errors.Wrap(err, "form: change")
	}
	c.lastChanged = path

	var fieldErrs validation.Errors
	if loc, ok := fieldpath.SchemaAt(c.root, path); ok {
		fieldErrs = c.validator.ValidateValue(value, loc.Node, path)
		c.replaceErrors(path, fieldErrs)
	} else {
		c.logger.Debug("form: no schema for changed path", "path", path)
	}

	snapshot := cloneValues(c.values)
	onChange := c.onChange
	c.mu.Unlock()

	c.logger.Debug("form: field changed", "path", path, "errors", len(fieldErrs))
	if onChange != nil {
		onChange(snapshot)
	}
	return fieldErrs, nil
}

// Submit validates the whole tree and replaces the error state with the
// result. OnSubmit runs only when the tree is valid; its error is returned
// as is. The validation errors are returned in declaration order.
func (c *Controller) Submit() (validation.Errors, error) {
	c.mu.Lock()

	errs := c.validator.Validate(c.values, c.root)
	c.errors = make(map[string]validation.Errors)
	c.errorOrder = nil
	for _, err := range errs {
		if _, seen := c.errors[err.Path]; !seen {
			c.errorOrder = append(c.errorOrder, err.Path)
		}
		c.errors[err.Path] = append(c.errors[err.Path], err)
	}
	c.lastChanged = ""

	snapshot := cloneValues(c.values)
	onSubmit := c.onSubmit
	c.mu.Unlock()

	if len(errs) > 0 {
		c.logger.Warn("form: validation failed", "errors", len(errs), "paths", strings.Join(errs.Paths(), ","))
		return errs, nil
	}
	if onSubmit != nil {
		if err := onSubmit(snapshot); err != nil {
			return nil, errors.Wrap(err, "form: submit")
		}
	}
	return nil, nil
}

// Values returns a deep copy of the current value tree.
func (c *Controller) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneValues(c.values)
}

// Value resolves path in the current value tree.
func (c *Controller) Value(path string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := fieldpath.Get(c.values, path)
	return fieldpath.Clone(value), ok
}

// SetValues replaces the value tree and notifies OnChange. Error state is
// left untouched.
func (c *Controller) SetValues(values map[string]any) {
	c.mu.Lock()
	c.values = cloneValues(values)
	snapshot := cloneValues(c.values)
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

// Reset restores the initial values, clears errors and the last edited
// field, and notifies OnChange.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.values = cloneValues(c.initial)
	c.errors = make(map[string]validation.Errors)
	c.errorOrder = nil
	c.lastChanged = ""
	snapshot := cloneValues(c.values)
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

// SetInitialValues replaces the initial values and the current tree with
// them. OnChange is not notified.
func (c *Controller) SetInitialValues(values map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initial = cloneValues(values)
	c.values = cloneValues(values)
}

// Errors returns every recorded error, grouped by path in the order paths
// first reported errors.
func (c *Controller) Errors() validation.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out validation.Errors
	for _, path := range c.errorOrder {
		out = append(out, c.errors[path]...)
	}
	return out
}

// FieldErrors returns the errors at path followed by the errors of every
// field nested under it.
func (c *Controller) FieldErrors(path string) validation.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors(path)
}

func (c *Controller) fieldErrors(path string) validation.Errors {
	out := append(validation.Errors(nil), c.errors[path]...)
	prefix := path + "."
	for _, p := range c.errorOrder {
		if strings.HasPrefix(p, prefix) {
			out = append(out, c.errors[p]...)
		}
	}
	return out
}

// Error returns the first message recorded at path.
func (c *Controller) Error(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := c.errors[path]
	if len(errs) == 0 {
		return "", false
	}
	return errs[0].Message, true
}

// LastChanged returns the path of the most recent edit, or "" after a submit
// or reset.
func (c *Controller) LastChanged() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastChanged
}

// Highlighted reports whether path should be emphasised: the last edit
// touched path or something under it, and path has errors.
func (c *Controller) Highlighted(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted(path)
}

func (c *Controller) highlighted(path string) bool {
	if c.lastChanged == "" {
		return false
	}
	touched := c.lastChanged == path || strings.HasPrefix(c.lastChanged, path+".")
	return touched && len(c.fieldErrors(path)) > 0
}

func (c *Controller) replaceErrors(path string, errs validation.Errors) {
	if len(errs) == 0 {
		if _, ok := c.errors[path]; ok {
			delete(c.errors, path)
			for i, p := range c.errorOrder {
				if p == path {
					c.errorOrder = append(c.errorOrder[:i], c.errorOrder[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := c.errors[path]; !ok {
		c.errorOrder = append(c.errorOrder, path)
	}
	c.errors[path] = append(validation.Errors(nil), errs...)
}

func cloneValues(values map[string]any) map[string]any {
	return fieldpath.CloneTree(values)
}
