package terminal

import "github.com/cockroachdb/errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C).
	ErrAborted = errors.New("terminal: aborted")
	// ErrTooManyAttempts is returned when a field keeps failing validation.
	ErrTooManyAttempts = errors.New("terminal: too many invalid attempts")
	// ErrNilController is returned when Fill is called without a controller.
	ErrNilController = errors.New("terminal: form controller is required")
)
