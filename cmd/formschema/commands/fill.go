package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/terminal"
)

func newFillCommand(a *app) *cobra.Command {
	var (
		valuesPath  string
		outputPath  string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively",
		Long: `Prompt for every field of a schema, validating each answer as it is given,
and write the resulting values once the whole form is valid.

Existing values from --values are offered as defaults.`,
		Example: `  formschema fill --schema profile.json
  formschema fill --schema profile.json --values draft.yaml --output profile.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.loadSchema(cmd)
			if err != nil {
				return err
			}
			initial, err := a.loadValues(cmd, valuesPath)
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = terminal.NewSurveyDriver(cmd.ErrOrStderr())
			}

			c, err := form.New(root, form.WithInitialValues(initial), form.WithLogger(a.logger))
			if err != nil {
				return report.NewUserError(err, "")
			}
			filler := terminal.New(
				terminal.WithPromptDriver(driver),
				terminal.WithOutputFormat(a.outputFormat()),
				terminal.WithLogger(a.logger),
				terminal.WithMaxAttempts(maxAttempts),
			)

			values, err := filler.Fill(cmd.Context(), c)
			switch {
			case errors.Is(err, terminal.ErrAborted):
				return report.NewUserError(err, "")
			case errors.Is(err, terminal.ErrTooManyAttempts):
				return report.NewUserError(err, "Run fill again or fix the values file")
			case err != nil:
				return report.NewSystemError(err, "")
			}

			data, err := filler.Serialize(values)
			if err != nil {
				return err
			}
			return writeOutput(cmd, outputPath, data)
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "values file providing defaults (JSON, YAML or TOML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write values to this file instead of stdout")
	cmd.Flags().String("format", "", "output format: json, yaml, form, pretty")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 5, "how often a field is asked again after an invalid answer")
	return cmd
}
