package interfaces

import (
	"context"

	"github.com/hiroq/pipet/pkg/domain/model"
)

// StepExecutor runs a single pipeline step. On a non-zero exit the
// returned result carries the step's exit code alongside the error.
type StepExecutor interface {
	Execute(ctx context.Context, step model.Step) (*model.StepResult, error)
}
