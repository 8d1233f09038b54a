package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := NewUserError(cause, "check the schema")

	assert.Equal(t, ExitUser, err.Code)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)

	var exitErr *ExitError
	wrapped := error(NewSystemError(nil, ""))
	assert.True(t, errors.As(wrapped, &exitErr))
	assert.Equal(t, ExitSystem, exitErr.Code)
	assert.Equal(t, "exit code 2", exitErr.Error())
}
