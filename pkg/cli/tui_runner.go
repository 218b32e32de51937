package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
	"github.com/hiroq/pipet/pkg/usecase"
)

// runWithTUI drives the pipeline under a full-screen step table.
// Step output is discarded: the table is the display surface. Pressing
// 'q' aborts the run by cancelling the pipeline context.
func runWithTUI(ctx context.Context, pipeline *model.Pipeline, hooks interfaces.HookExecutor, notifier interfaces.Notifier) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tuiModel := NewTUIModel(pipeline)
	program := tea.NewProgram(tuiModel, tea.WithAltScreen())

	// Tool output would corrupt the alt screen
	executor := usecase.NewCommandExecutor()
	executor.Stdout = io.Discard
	executor.Stderr = io.Discard

	runner := usecase.NewRunner(usecase.RunnerOptions{
		Pipeline: pipeline,
		Command:  executor,
		Display:  NewTUIDisplay(program),
		Hooks:    hooks,
		Notifier: notifier,
	})

	runErrCh := make(chan error, 1)
	go func() {
		err := runner.Execute(runCtx)
		runErrCh <- err
		if err != nil {
			// A cancelled run returns before Display.Summary fires, so
			// make sure the program still quits.
			program.Send(PipelineFinishedMsg{})
		}
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-runErrCh
		return err
	}

	cancel()
	runErr := <-runErrCh
	hooks.WaitForCompletion()

	printFinalSummary(pipeline, tuiModel)
	return runErr
}

// printFinalSummary re-prints the step table on the normal screen after
// the alt screen closes, so the outcome stays in the terminal scrollback.
func printFinalSummary(pipeline *model.Pipeline, m *TUIModel) {
	fmt.Printf("🔧 %s\n", pipeline.Name)
	for _, row := range m.rows {
		line := fmt.Sprintf("%s %-24s %s", stepStatusIcon(row.status), row.name, string(row.status))
		switch row.status {
		case model.StepStatusSuccess:
			color.New(color.FgGreen).Println(line)
		case model.StepStatusFailure:
			color.New(color.FgRed).Printf("%s (exit %d)\n", line, row.exitCode)
		default:
			fmt.Println(line)
		}
	}
	if m.summary != nil {
		var parts []string
		parts = append(parts, fmt.Sprintf("%d passed", m.summary.SuccessCount))
		if m.summary.FailureCount > 0 {
			parts = append(parts, fmt.Sprintf("%d failed", m.summary.FailureCount))
		}
		if m.summary.SkippedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d skipped", m.summary.SkippedCount))
		}
		fmt.Printf("\n[%s | %s]\n", strings.Join(parts, " "), m.summary.Duration.Round(time.Millisecond))
	}
}
