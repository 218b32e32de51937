package interfaces

import (
	"github.com/hiroq/pipet/pkg/domain/model"
)

type Display interface {
	// Trace emits the literal command line before a step runs.
	Trace(step model.Step)
	StepStart(step model.Step)
	StepDone(result *model.StepResult)
	StepFailed(result *model.StepResult, err error)
	Summary(summary *model.Summary)
}
