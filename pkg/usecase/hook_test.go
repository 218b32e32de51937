package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hiroq/pipet/pkg/domain/model"
	"github.com/hiroq/pipet/pkg/usecase"
)

func TestHookExecutor(t *testing.T) {
	t.Run("Execute with nil config does not panic", func(t *testing.T) {
		executor := usecase.NewHookExecutor(nil)
		event := model.PipelineEvent{
			Type:     model.HookStepSuccess,
			Pipeline: "build",
			Step:     "unit tests",
		}

		err := executor.Execute(context.Background(), event)
		gt.NoError(t, err)
	})

	t.Run("Execute with empty config does not panic", func(t *testing.T) {
		executor := usecase.NewHookExecutor(&model.Config{})
		event := model.PipelineEvent{
			Type:     model.HookCompleteSuccess,
			Pipeline: "build",
		}

		err := executor.Execute(context.Background(), event)
		gt.NoError(t, err)
	})

	t.Run("Execute handles unknown action type gracefully", func(t *testing.T) {
		config := &model.Config{
			Hooks: model.HooksConfig{
				StepSuccess: []model.Action{
					{
						Type: "unknown",
						Data: map[string]any{},
					},
				},
			},
		}
		executor := usecase.NewHookExecutor(config)
		event := model.PipelineEvent{
			Type:     model.HookStepSuccess,
			Pipeline: "build",
			Step:     "lint",
		}

		err := executor.Execute(context.Background(), event)
		gt.NoError(t, err)
		executor.WaitForCompletion()
	})

	t.Run("actions fire only for their event", func(t *testing.T) {
		skipOnWindows(t)
		tmpDir := t.TempDir()
		successMarker := filepath.Join(tmpDir, "success")
		failureMarker := filepath.Join(tmpDir, "failure")

		config := &model.Config{
			Hooks: model.HooksConfig{
				StepSuccess: []model.Action{
					{
						Type: "command",
						Data: map[string]any{
							"command": "touch",
							"args":    []string{successMarker},
						},
					},
				},
				StepFailure: []model.Action{
					{
						Type: "command",
						Data: map[string]any{
							"command": "touch",
							"args":    []string{failureMarker},
						},
					},
				},
			},
		}
		executor := usecase.NewHookExecutor(config)

		event := model.PipelineEvent{
			Type:     model.HookStepSuccess,
			Pipeline: "build",
			Step:     "unit tests",
		}
		gt.NoError(t, executor.Execute(context.Background(), event))
		executor.WaitForCompletion()

		_, err := os.Stat(successMarker)
		gt.NoError(t, err)
		_, err = os.Stat(failureMarker)
		gt.True(t, os.IsNotExist(err))
	})

	t.Run("WaitForCompletion waits for all pending actions", func(t *testing.T) {
		skipOnWindows(t)
		tmpDir := t.TempDir()
		marker := filepath.Join(tmpDir, "slow-hook")

		config := &model.Config{
			Hooks: model.HooksConfig{
				CompleteSuccess: []model.Action{
					{
						Type: "command",
						Data: map[string]any{
							"command": "sh",
							"args":    []string{"-c", "sleep 0.2 && touch " + marker},
						},
					},
				},
			},
		}
		executor := usecase.NewHookExecutor(config)

		event := model.PipelineEvent{
			Type:     model.HookCompleteSuccess,
			Pipeline: "build",
		}
		gt.NoError(t, executor.Execute(context.Background(), event))
		executor.WaitForCompletion()

		_, err := os.Stat(marker)
		gt.NoError(t, err)
	})
}
