package form

import (
	"log/slog"

	"github.com/goliatone/go-formschema/pkg/fields"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// ChangeFunc receives a snapshot of the value tree after every edit.
type ChangeFunc func(values map[string]any)

// SubmitFunc receives a snapshot of a value tree that passed validation.
type SubmitFunc func(values map[string]any) error

// Option customises a Controller.
type Option func(*Controller)

// WithInitialValues seeds both the initial and the current value tree.
func WithInitialValues(values map[string]any) Option {
	return func(c *Controller) {
		c.initial = cloneValues(values)
	}
}

// WithValidator swaps the validator used for field and submit checks.
func WithValidator(v validation.Interface) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithRegistry sets the kind registry used to build field descriptors.
func WithRegistry(reg *fields.Registry) Option {
	return func(c *Controller) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithOnChange registers the change callback.
func WithOnChange(fn ChangeFunc) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithOnSubmit registers the submit callback. It only runs for valid trees.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
