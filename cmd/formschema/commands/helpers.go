package commands

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/internal/report"
)

func loadError(err error) error {
	switch {
	case errors.Is(err, loader.ErrHTTPDisabled):
		return report.NewUserError(err, "Pass --allow-http or set loader.allow_http to load documents over HTTP")
	case errors.Is(err, fs.ErrNotExist):
		return report.NewUserError(err, "Check that the file exists")
	case errors.Is(err, fs.ErrPermission):
		return report.NewSystemError(err, "Check the file permissions")
	default:
		return report.NewUserError(err, "")
	}
}

// writeOutput writes data to path, or to the command output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing output")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return report.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
	}
	return nil
}
