package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/fieldpath"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/terminal"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// assignment is one PATH=RAW argument.
type assignment struct {
	path string
	raw  string
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		path, raw, ok := strings.Cut(arg, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, errors.Newf("invalid assignment %q (expected PATH=VALUE)", arg)
		}
		out = append(out, assignment{path: path, raw: raw})
	}
	return out, nil
}

func newSetCommand(a *app) *cobra.Command {
	var (
		valuesPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "set PATH=VALUE...",
		Short: "Set fields of a values file",
		Long: `Parse each VALUE with the handler for the field kind at PATH, apply it to
the values tree and validate the changed field. The updated tree is written
only when every changed field is valid.

Exit codes:
  0 - values written
  1 - a path is unknown, a value does not parse or a changed field is invalid`,
		Example: `  formschema set --schema profile.json --values profile.yaml age=42 address.city=Paris
  formschema set --schema profile.json --values profile.yaml -o profile.yaml --format yaml newsletter=yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args)
			if err != nil {
				return report.NewUserError(err, "")
			}
			root, err := a.loadSchema(cmd)
			if err != nil {
				return err
			}
			values, err := a.loadValues(cmd, valuesPath)
			if err != nil {
				return err
			}

			c, err := form.New(root, form.WithInitialValues(values), form.WithLogger(a.logger))
			if err != nil {
				return report.NewUserError(err, "")
			}

			var errs validation.Errors
			for _, item := range assignments {
				loc, ok := fieldpath.SchemaAt(root, item.path)
				if !ok {
					return report.NewUserError(errors.Newf("unknown field %q", item.path), "Run 'formschema inspect' to list the fields")
				}
				handler, ok := c.Registry().ResolveNode(loc.Node)
				if !ok {
					return report.NewUserError(errors.Newf("field %q has an unsupported type", item.path), "")
				}
				value, err := handler.Parse(item.raw)
				if err != nil {
					return report.NewUserError(errors.Wrapf(err, "field %q", item.path), "")
				}
				a.logger.Debug("setting field", "path", item.path, "handler", handler.Name())
				fieldErrs, err := c.Change(item.path, value)
				if err != nil {
					return report.NewUserError(err, "")
				}
				errs = append(errs, fieldErrs...)
			}

			if len(errs) > 0 {
				format, _ := report.ParseFormat(a.cfg.Report.Format)
				if err := report.NewReporter(cmd.ErrOrStderr(), format).Report(valuesPath, errs); err != nil {
					return report.NewSystemError(err, "")
				}
				return &report.ExitError{Code: report.ExitUser}
			}

			data, err := terminal.Serialize(a.outputFormat(), c.Values())
			if err != nil {
				return err
			}
			return writeOutput(cmd, outputPath, data)
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "values file to update (JSON, YAML or TOML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write values to this file instead of stdout")
	cmd.Flags().String("report", "", "report format for validation errors: text, json")
	cmd.Flags().String("format", "", "output format: json, yaml, form, pretty")
	return cmd
}
