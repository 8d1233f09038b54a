// Package commands implements the formschema CLI.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	formschema "github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/internal/config"
	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/terminal"
)

const version = "0.1.0"

// commandFlags maps config keys onto the subcommand flags overriding them.
var commandFlags = map[string]string{
	"output.format": "format",
	"report.format": "report",
}

// app carries the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	resolver   *formschema.Resolver
	configPath string
	schemaPath string
	openapiRef string

	// driver overrides the interactive prompt driver.
	driver terminal.PromptDriver
}

// NewRootCommand builds the command tree. driver may be nil to prompt
// through the terminal.
func NewRootCommand(driver terminal.PromptDriver) *cobra.Command {
	a := &app{v: config.New(), logger: logging.NewDiscard(), driver: driver}

	root := &cobra.Command{
		Use:   "formschema",
		Short: "Validate, inspect and fill values against form schemas",
		Long: `formschema reads a JSON or YAML form schema (or a schema embedded in an
OpenAPI document) and works with value trees described by it: validating
them, listing the fields, filling them interactively or setting single
fields from the command line.

Values files may be JSON, YAML or TOML.`,
		Example: `  # Validate a values file
  formschema validate --schema profile.json --values profile.yaml

  # Fill a form from an OpenAPI operation
  formschema fill --schema api.yaml --openapi createPet

  # Set one field
  formschema set --schema profile.json --values profile.yaml age=42`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetVersionTemplate("formschema version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/formschema/config.yaml)")
	flags.StringVarP(&a.schemaPath, "schema", "s", "", "schema document: file path, URL or - for stdin")
	flags.StringVar(&a.openapiRef, "openapi", "", "treat the schema as an OpenAPI document and import this reference (#/components/schemas/Name or an operationId)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")
	flags.Bool("allow-http", false, "allow loading documents over HTTP")

	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("loader.allow_http", flags.Lookup("allow-http"))

	root.AddCommand(
		newValidateCommand(a),
		newInspectCommand(a),
		newFillCommand(a),
		newSetCommand(a),
	)
	return root
}

// Run executes the CLI and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return run(NewRootCommand(nil), args, stdin, stdout, stderr)
}

func run(root *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return report.ExitSuccess
	}

	code := report.ExitUser
	var exitErr *report.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Err == nil {
			return code
		}
	}
	fmt.Fprintf(stderr, "%s %v\n", color.RedString("Error:"), err)
	if exitErr != nil && exitErr.Suggestion != "" {
		fmt.Fprintf(stderr, "%s\n", exitErr.Suggestion)
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(stderr, "Hint: %s\n", hint)
	}
	return code
}

// setup loads configuration and builds the logger and resolver.
func (a *app) setup(cmd *cobra.Command) error {
	for key, name := range commandFlags {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = a.v.BindPFlag(key, flag)
		}
	}
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return report.NewUserError(err, "Check the --config path and its YAML syntax")
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return report.NewUserError(errors.Join(errs...), "Fix the settings in the config file or FORMSCHEMA_* environment")
	}
	a.cfg = cfg

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	a.logger = logging.New(logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()})
	a.resolver = formschema.NewResolver(
		formschema.WithLoaderOptions(formschema.LoaderOptions{
			AllowHTTP: cfg.Loader.AllowHTTP,
			Timeout:   cfg.Loader.Timeout,
			Stdin:     cmd.InOrStdin(),
		}),
		formschema.WithLogger(a.logger),
	)
	a.logger.Debug("configuration loaded", "config", a.v.ConfigFileUsed(), "output", cfg.Output.Format)
	return nil
}

func (a *app) loadSchema(cmd *cobra.Command) (*schema.Node, error) {
	if strings.TrimSpace(a.schemaPath) == "" {
		return nil, report.NewUserError(errors.New("--schema is required"), "Run 'formschema --help' for usage")
	}
	src, err := schema.ParseSource(a.schemaPath)
	if err != nil {
		return nil, report.NewUserError(err, "")
	}
	root, err := a.resolver.Resolve(cmd.Context(), formschema.Request{Source: src, OpenAPIRef: a.openapiRef})
	if err != nil {
		return nil, loadError(err)
	}
	return root, nil
}

func (a *app) loadValues(cmd *cobra.Command, path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]any{}, nil
	}
	src, err := schema.ParseSource(path)
	if err != nil {
		return nil, report.NewUserError(err, "")
	}
	values, err := a.resolver.LoadValues(cmd.Context(), src)
	if err != nil {
		return nil, loadError(err)
	}
	return values, nil
}

func (a *app) outputFormat() terminal.OutputFormat {
	return terminal.OutputFormat(a.cfg.Output.Format)
}
