// Package logging builds the slog loggers used by the command line tool and
// the form controller.
package logging
