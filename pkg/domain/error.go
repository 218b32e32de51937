package domain

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrConfiguration = goerr.New("configuration error")
	ErrUnsetVariable = goerr.New("reference to unset variable")
)

// Exit codes for failures that do not come from a step's own process.
// ExitCodeFatal matches the shell's exit status for unbound parameters
// under `set -u`; ExitCodeNotFound matches the shell's status for a
// command that could not be started.
const (
	ExitCodeFatal    = 1
	ExitCodeNotFound = 127
)

// StepFailure reports the first step of a pipeline that did not succeed.
// The pipeline's process exit code equals Code.
type StepFailure struct {
	Step string
	Code int
	Err  error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step %q failed with exit code %d: %v", e.Step, e.Code, e.Err)
}

func (e *StepFailure) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the runner to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var failure *StepFailure
	if errors.As(err, &failure) {
		return failure.Code
	}
	return ExitCodeFatal
}
