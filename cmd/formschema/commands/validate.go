package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/form"
)

func newValidateCommand(a *app) *cobra.Command {
	var valuesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a values file against a schema",
		Long: `Validate a values file against a schema and report every failing field.

Exit codes:
  0 - values are valid
  1 - validation failed or the input could not be read`,
		Example: `  formschema validate --schema profile.json --values profile.yaml
  formschema validate --schema api.yaml --openapi createPet --values pet.json --report json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			errs, err := c.Submit()
			if err != nil {
				return err
			}

			format, _ := report.ParseFormat(a.cfg.Report.Format)
			if err := report.NewReporter(cmd.OutOrStdout(), format).Report(valuesPath, errs); err != nil {
				return report.NewSystemError(err, "")
			}
			if len(errs) > 0 {
				return &report.ExitError{Code: report.ExitUser}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "values file (JSON, YAML or TOML); - reads stdin")
	cmd.Flags().String("report", "", "report format: text, json")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}
