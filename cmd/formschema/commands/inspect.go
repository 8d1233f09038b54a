package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	formschema "github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/fields"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// fieldInfo is one row of the inspect listing.
type fieldInfo struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
	Handler  string `json:"handler"`
	Depth    int    `json:"-"`
}

func newInspectCommand(a *app) *cobra.Command {
	var (
		asJSON     bool
		references bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the fields a schema describes",
		Long: `List every field of a schema in declaration order with its kind, whether
it is required, its default and the handler that edits it.

With --references the schema is read as an OpenAPI document and the schema
references it offers are listed instead.`,
		Example: `  formschema inspect --schema profile.json
  formschema inspect --schema api.yaml --references`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if references {
				return a.listReferences(cmd)
			}
			root, err := a.loadSchema(cmd)
			if err != nil {
				return err
			}
			rows, err := collectFields(root, fields.NewDefaultRegistry())
			if err != nil {
				return err
			}
			if asJSON {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return errors.Wrap(err, "encoding fields")
				}
				return writeOutput(cmd, "", append(data, '\n'))
			}
			return printFields(cmd, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the field list as JSON")
	cmd.Flags().BoolVar(&references, "references", false, "list the schema references of an OpenAPI document")
	return cmd
}

func collectFields(root *schema.Node, reg *fields.Registry) ([]fieldInfo, error) {
	rows := []fieldInfo{}
	err := schema.Walk(root, func(path, _ string, node *schema.Node) error {
		kind := schema.FieldKind(node)
		row := fieldInfo{
			Path:     path,
			Kind:     string(kind),
			Required: node.Required,
			Default:  node.Default,
			Handler:  "unsupported",
			Depth:    strings.Count(path, "."),
		}
		if handler, ok := reg.ResolveNode(node); ok {
			row.Handler = handler.Name()
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

func printFields(cmd *cobra.Command, rows []fieldInfo) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tKIND\tREQUIRED\tDEFAULT\tHANDLER")
	for _, row := range rows {
		required := ""
		if row.Required {
			required = "yes"
		}
		def := ""
		if row.Default != nil {
			def = fmt.Sprint(row.Default)
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n", strings.Repeat("  ", row.Depth), row.Path, row.Kind, required, def, row.Handler)
	}
	return errors.Wrap(w.Flush(), "writing fields")
}

func (a *app) listReferences(cmd *cobra.Command) error {
	if strings.TrimSpace(a.schemaPath) == "" {
		return report.NewUserError(errors.New("--schema is required"), "Run 'formschema inspect --help' for usage")
	}
	src, err := schema.ParseSource(a.schemaPath)
	if err != nil {
		return report.NewUserError(err, "")
	}
	refs, err := a.resolver.References(cmd.Context(), formschema.Request{Source: src})
	if err != nil {
		return loadError(err)
	}
	for _, ref := range refs {
		fmt.Fprintln(cmd.OutOrStdout(), ref)
	}
	return nil
}
