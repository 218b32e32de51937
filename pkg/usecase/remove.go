package usecase

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hiroq/pipet/pkg/domain"
	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

// RemoveExecutor implements the builtin cleanup step. Removal is
// idempotent: a missing target succeeds, a genuine I/O error such as
// permission denial does not.
type RemoveExecutor struct{}

func NewRemoveExecutor() *RemoveExecutor {
	return &RemoveExecutor{}
}

var _ interfaces.StepExecutor = (*RemoveExecutor)(nil)

func (e *RemoveExecutor) Execute(ctx context.Context, step model.Step) (*model.StepResult, error) {
	logger := ctxlog.From(ctx)
	result := &model.StepResult{
		Name:   step.Name,
		Status: model.StepStatusFailure,
	}

	target, err := expandStrict(step.Remove, step.Env)
	if err != nil {
		result.ExitCode = domain.ExitCodeFatal
		return result, err
	}
	if target == "" || target == "/" {
		result.ExitCode = domain.ExitCodeFatal
		return result, goerr.New("refusing to remove " + target)
	}

	logger.Debug("removing directory",
		slog.String("step", step.Name),
		slog.String("target", target),
	)

	start := time.Now()
	if err := os.RemoveAll(target); err != nil {
		result.Duration = time.Since(start)
		result.ExitCode = domain.ExitCodeFatal
		return result, goerr.Wrap(err, "failed to remove "+target)
	}

	result.Duration = time.Since(start)
	result.Status = model.StepStatusSuccess
	return result, nil
}
