package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/ctxlog"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

type hookExecutor struct {
	config  *model.Config
	actions map[string]interfaces.ActionExecutor
	wg      sync.WaitGroup
}

// NewHookExecutor creates a new HookExecutor instance
func NewHookExecutor(config *model.Config) interfaces.HookExecutor {
	return &hookExecutor{
		config: config,
		actions: map[string]interfaces.ActionExecutor{
			"command": NewCommandAction(),
			"slack":   NewSlackAction(),
		},
	}
}

// Execute runs hooks for the given event. Actions run asynchronously so
// the pipeline never blocks on a hook.
func (h *hookExecutor) Execute(ctx context.Context, event model.PipelineEvent) error {
	logger := ctxlog.From(ctx)

	actions := h.getActionsForEvent(event.Type)
	for _, action := range actions {
		h.wg.Add(1)
		go func(a model.Action) {
			defer h.wg.Done()
			if err := h.executeAction(ctx, a, event); err != nil {
				logger.Warn("Failed to execute hook action",
					slog.String("type", a.Type),
					slog.String("event", string(event.Type)),
					slog.String("error", err.Error()),
				)
			}
		}(action)
	}

	return nil
}

// WaitForCompletion blocks until all pending actions have finished.
func (h *hookExecutor) WaitForCompletion() {
	h.wg.Wait()
}

// getActionsForEvent returns actions configured for the given event type
func (h *hookExecutor) getActionsForEvent(eventType model.HookEvent) []model.Action {
	if h.config == nil {
		return nil
	}

	switch eventType {
	case model.HookStepSuccess:
		return h.config.Hooks.StepSuccess
	case model.HookStepFailure:
		return h.config.Hooks.StepFailure
	case model.HookCompleteSuccess:
		return h.config.Hooks.CompleteSuccess
	case model.HookCompleteFailure:
		return h.config.Hooks.CompleteFailure
	default:
		return nil
	}
}

// executeAction executes a single action
func (h *hookExecutor) executeAction(ctx context.Context, action model.Action, event model.PipelineEvent) error {
	executor, ok := h.actions[action.Type]
	if !ok {
		logger := ctxlog.From(ctx)
		logger.Warn("Unknown action type",
			slog.String("type", action.Type),
		)
		return nil
	}

	return executor.Execute(ctx, action, event)
}
