package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/hiroq/pipet/pkg/domain"
	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

// Runner executes the steps of a pipeline strictly in sequence. The
// first fatal failure aborts the run and its exit code becomes the
// process result; later steps, cleanup included, never run.
type Runner struct {
	pipeline *model.Pipeline
	command  interfaces.StepExecutor
	remove   interfaces.StepExecutor
	display  interfaces.Display
	hooks    interfaces.HookExecutor
	notifier interfaces.Notifier
	trace    bool
}

type RunnerOptions struct {
	Pipeline *model.Pipeline
	Command  interfaces.StepExecutor
	Remove   interfaces.StepExecutor
	Display  interfaces.Display
	Hooks    interfaces.HookExecutor
	Notifier interfaces.Notifier
	Trace    bool
}

func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		pipeline: opts.Pipeline,
		command:  opts.Command,
		remove:   opts.Remove,
		display:  opts.Display,
		hooks:    opts.Hooks,
		notifier: opts.Notifier,
		trace:    opts.Trace,
	}
	if r.command == nil {
		r.command = NewCommandExecutor()
	}
	if r.remove == nil {
		r.remove = NewRemoveExecutor()
	}
	return r
}

func (r *Runner) Execute(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	startTime := time.Now()
	summary := &model.Summary{TotalSteps: len(r.pipeline.Steps)}

	logger.Debug("starting pipeline",
		slog.String("pipeline", r.pipeline.Name),
		slog.Int("steps", len(r.pipeline.Steps)),
	)

	for i, step := range r.pipeline.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if r.trace && r.display != nil {
			r.display.Trace(step)
		}
		if r.display != nil {
			r.display.StepStart(step)
		}

		executor := r.command
		if step.IsRemove() {
			executor = r.remove
		}

		result, err := executor.Execute(ctx, step)
		if err != nil {
			summary.FailureCount++
			if r.display != nil {
				r.display.StepFailed(result, err)
			}
			r.fireHook(ctx, model.HookStepFailure, step.Name, result)

			if step.ContinueOnError {
				logger.Warn("step failed, continuing",
					slog.String("step", step.Name),
					slog.Int("exit_code", result.ExitCode),
					slog.String("error", err.Error()),
				)
				continue
			}

			summary.SkippedCount = len(r.pipeline.Steps) - i - 1
			summary.Duration = time.Since(startTime)
			r.finish(ctx, summary, result)
			return &domain.StepFailure{
				Step: step.Name,
				Code: result.ExitCode,
				Err:  err,
			}
		}

		summary.SuccessCount++
		if r.display != nil {
			r.display.StepDone(result)
		}
		r.fireHook(ctx, model.HookStepSuccess, step.Name, result)
	}

	summary.Duration = time.Since(startTime)
	r.finish(ctx, summary, nil)
	return nil
}

// finish emits the summary, fires the completion hook and notifies.
// failed is the fatal step result, nil when every step succeeded.
func (r *Runner) finish(ctx context.Context, summary *model.Summary, failed *model.StepResult) {
	logger := ctxlog.From(ctx)

	if r.display != nil {
		r.display.Summary(summary)
	}

	event := model.PipelineEvent{
		Type:     model.HookCompleteSuccess,
		Pipeline: r.pipeline.Name,
		Duration: summary.Duration,
	}
	if failed != nil {
		event.Type = model.HookCompleteFailure
		event.Step = failed.Name
		event.ExitCode = failed.ExitCode
	}
	if r.hooks != nil {
		if err := r.hooks.Execute(ctx, event); err != nil {
			logger.Warn("failed to execute completion hooks",
				slog.String("error", err.Error()),
			)
		}
	}

	if r.notifier != nil {
		if err := r.notifier.NotifyComplete(ctx, summary); err != nil {
			logger.Warn("failed to notify completion",
				slog.String("error", err.Error()),
			)
		}
	}
}

func (r *Runner) fireHook(ctx context.Context, eventType model.HookEvent, stepName string, result *model.StepResult) {
	if r.hooks == nil {
		return
	}
	logger := ctxlog.From(ctx)

	event := model.PipelineEvent{
		Type:     eventType,
		Pipeline: r.pipeline.Name,
		Step:     stepName,
		Duration: result.Duration,
		ExitCode: result.ExitCode,
	}
	if err := r.hooks.Execute(ctx, event); err != nil {
		logger.Warn("failed to execute step hooks",
			slog.String("step", stepName),
			slog.String("error", err.Error()),
		)
	}
}
