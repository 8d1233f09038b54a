package report

import "fmt"

// Exit codes returned by the formschema command.
const (
	ExitSuccess = 0
	// ExitUser covers invalid input: bad flags, unreadable schemas, values
	// that fail validation.
	ExitUser = 1
	// ExitSystem covers I/O and environment failures.
	ExitSystem = 2
)

// ExitError wraps an error with an exit code and an optional suggestion.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewUserError returns an ExitError with ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError returns an ExitError with ExitSystem.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
