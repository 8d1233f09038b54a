package config

import (
	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/terminal"
)

// ErrInvalidValue marks a setting outside its allowed values.
var ErrInvalidValue = errors.New("invalid value")

// FieldError reports one invalid setting.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Key + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks every setting and returns all problems found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	invalid := func(key, value string) {
		errs = append(errs, &FieldError{Key: key, Value: value, Err: ErrInvalidValue})
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		invalid("log.level", cfg.Log.Level)
	}
	if _, err := logging.ParseFormat(cfg.Log.Format); err != nil {
		invalid("log.format", cfg.Log.Format)
	}
	if _, err := report.ParseFormat(cfg.Report.Format); err != nil {
		invalid("report.format", cfg.Report.Format)
	}
	switch terminal.OutputFormat(cfg.Output.Format) {
	case terminal.OutputFormatJSON, terminal.OutputFormatYAML, terminal.OutputFormatForm, terminal.OutputFormatPretty:
	default:
		invalid("output.format", cfg.Output.Format)
	}
	if cfg.Loader.Timeout < 0 {
		invalid("loader.timeout", cfg.Loader.Timeout.String())
	}
	return errs
}
