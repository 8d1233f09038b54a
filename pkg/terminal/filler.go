package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/fields"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

const defaultMaxAttempts = 5

// Filler walks a form's fields, prompts for each one and feeds the answers
// into the form controller, asking again while a field has errors.
type Filler struct {
	driver      PromptDriver
	format      OutputFormat
	logger      *slog.Logger
	maxAttempts int
}

// New constructs a Filler (survey driver, JSON output).
func New(opts ...Option) *Filler {
	f := &Filler{
		format:      OutputFormatJSON,
		logger:      logging.NewDiscard(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for every editable field, then submits. Fields reported by
// the submit are asked again until the tree is valid or the attempt budget
// runs out, in which case the remaining validation errors are returned.
func (f *Filler) Fill(ctx context.Context, c *form.Controller) (map[string]any, error) {
	if c == nil {
		return nil, ErrNilController
	}

	all := form.Flatten(c.Fields())
	byPath := make(map[string]form.Field, len(all))
	for _, field := range all {
		byPath[field.Path] = field
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := f.visit(ctx, c, field); err != nil {
			return nil, err
		}
	}

	for round := 0; ; round++ {
		errs, err := c.Submit()
		if err != nil {
			return nil, err
		}
		if len(errs) == 0 {
			return c.Values(), nil
		}
		if round >= f.maxAttempts {
			return nil, errors.Wrapf(ErrTooManyAttempts, "submit: %s", errs.Error())
		}
		f.logger.Debug("terminal: submit rejected", "errors", len(errs))
		for _, path := range errs.Paths() {
			field, ok := byPath[path]
			if !ok {
				continue
			}
			f.report(ctx, errs.ForPath(path))
			if err := f.promptUntilValid(ctx, c, field); err != nil {
				return nil, err
			}
		}
	}
}

func (f *Filler) visit(ctx context.Context, c *form.Controller, field form.Field) error {
	switch {
	case !field.Supported:
		f.logger.Debug("terminal: skipping field", "path", field.Path, "kind", field.Kind)
		return f.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Path, field.Diagnostic))
	case len(field.Children) > 0:
		return f.driver.Info(ctx, sectionHeader(field))
	default:
		return f.promptUntilValid(ctx, c, field)
	}
}

func (f *Filler) promptUntilValid(ctx context.Context, c *form.Controller, field form.Field) error {
	handler, ok := c.Registry().ResolveNode(field.Node)
	if !ok {
		return nil
	}
	current := field.Value
	if value, found := c.Value(field.Path); found {
		current = value
	}

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		value, err := f.ask(ctx, field, handler, current)
		var parseErr errParse
		if errors.As(err, &parseErr) {
			f.logger.Debug("terminal: unparsable answer", "path", field.Path, "error", err)
			if infoErr := f.driver.Info(ctx, fmt.Sprintf("✗ %s: %v", field.Path, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		if err != nil {
			return err
		}

		fieldErrs, err := c.Change(field.Path, value)
		if err != nil {
			return err
		}
		if len(fieldErrs) == 0 {
			return nil
		}
		current = value
		f.report(ctx, fieldErrs)
	}
	return errors.Wrapf(ErrTooManyAttempts, "field %s", field.Path)
}

// errParse wraps handler parse failures so they are retried rather than
// returned.
type errParse struct{ cause error }

func (e errParse) Error() string { return e.cause.Error() }

func (f *Filler) ask(ctx context.Context, field form.Field, handler fields.Handler, current any) (any, error) {
	label := plainText(field.Label)
	if field.Required {
		label += " *"
	}
	help := plainText(field.Description)

	if len(field.Enum) > 0 {
		options := make([]string, len(field.Enum))
		defaultIdx := -1
		for i, option := range field.Enum {
			options[i] = fmt.Sprint(option)
			if current != nil && fmt.Sprint(current) == options[i] {
				defaultIdx = i
			}
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: defaultIdx, Help: help})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return nil, errParse{cause: errors.Newf("invalid selection %d", idx)}
		}
		return field.Enum[idx], nil
	}

	if field.Kind == schema.KindBoolean {
		def, _ := current.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})
	}

	def := handler.Format(current)
	var (
		raw string
		err error
	)
	switch strings.ToLower(field.Format) {
	case "password":
		raw, err = f.driver.Password(ctx, InputConfig{Message: label, Default: def, Help: help})
	case "textarea":
		raw, err = f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: help})
	default:
		raw, err = f.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: help})
	}
	if err != nil {
		return nil, err
	}
	value, err := handler.Parse(raw)
	if err != nil {
		return nil, errParse{cause: err}
	}
	return value, nil
}

func (f *Filler) report(ctx context.Context, errs validation.Errors) {
	for _, err := range errs {
		_ = f.driver.Info(ctx, "✗ "+err.Message)
	}
}

func sectionHeader(field form.Field) string {
	header := "== " + plainText(field.Label) + " =="
	if desc := plainText(field.Description); desc != "" {
		header += "\n" + desc
	}
	return header
}
