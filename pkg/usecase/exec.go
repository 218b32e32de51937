package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hiroq/pipet/pkg/domain"
	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

// CommandExecutor runs a step's external command, streaming the tool's
// own output through so the trace line stays the last runner-owned line
// before any tool error output.
type CommandExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandExecutor creates a CommandExecutor wired to the process streams
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

var _ interfaces.StepExecutor = (*CommandExecutor)(nil)

// Execute runs the step command and reports its exit code
func (e *CommandExecutor) Execute(ctx context.Context, step model.Step) (*model.StepResult, error) {
	logger := ctxlog.From(ctx)
	result := &model.StepResult{
		Name:   step.Name,
		Status: model.StepStatusFailure,
	}

	argv, err := expandStrictAll(step.Run, step.Env)
	if err != nil {
		result.ExitCode = domain.ExitCodeFatal
		return result, err
	}

	dir, err := expandStrict(step.Dir, step.Env)
	if err != nil {
		result.ExitCode = domain.ExitCodeFatal
		return result, err
	}

	env, err := expandStrictAll(step.Env, nil)
	if err != nil {
		result.ExitCode = domain.ExitCodeFatal
		return result, err
	}

	cmdCtx := ctx
	if step.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, step.Timeout.Std())
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, argv[0], argv[1:]...) // #nosec G204 - command is from the pipeline file
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	logger.Debug("executing step command",
		slog.String("step", step.Name),
		slog.Any("argv", argv),
		slog.Duration("timeout", step.Timeout.Std()),
	)

	start := time.Now()
	runErr := cmd.Run()
	result.Duration = time.Since(start)

	if runErr == nil {
		result.Status = model.StepStatusSuccess
		return result, nil
	}

	if cmdCtx.Err() == context.DeadlineExceeded {
		// Same exit status as timeout(1)
		result.ExitCode = 124
		return result, goerr.Wrap(runErr, "command timed out after "+step.Timeout.Std().String())
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, goerr.Wrap(runErr, "command exited with non-zero status")
	}

	// The command never started: not found, not executable, bad dir
	result.ExitCode = domain.ExitCodeNotFound
	return result, goerr.Wrap(runErr, "failed to start command")
}
