package cli

import (
	"errors"
	"fmt"

	"leantime-mcp/internal/domain"
)

// Process exit codes.
const (
	exitFailure    = 1
	exitConfig     = 2
	exitInputParse = 3
	exitNotFound   = 4
	exitValidation = 5
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// toolExitError picks the exit code for a failed tool call.
func toolExitError(err error) *ExitError {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return exitError(exitNotFound, "%v", err)
	case errors.Is(err, domain.ErrValidation):
		return exitError(exitValidation, "%v", err)
	default:
		return exitError(exitFailure, "%v", err)
	}
}
