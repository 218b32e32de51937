package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

// DisplayManager provides compact, non-fullscreen step-by-step output.
// Trace lines go to stderr like `set -x`, status lines to stdout.
type DisplayManager struct {
	pipelineName string
	spin         *spinner.Spinner
}

func NewDisplayManager(pipelineName string) interfaces.Display {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	return &DisplayManager{
		pipelineName: pipelineName,
		spin:         s,
	}
}

func (d *DisplayManager) Trace(step model.Step) {
	color.New(color.Faint).Fprintf(os.Stderr, "+ %s\n", step.CommandLine())
}

func (d *DisplayManager) StepStart(step model.Step) {
	d.spin.Suffix = " " + step.Name
	d.spin.Start()
}

func (d *DisplayManager) StepDone(result *model.StepResult) {
	d.stopSpinner()
	color.New(color.FgGreen).Printf("✅ %s [%s] %s\n",
		result.Name, result.Status, formatDuration(result.Duration))
}

func (d *DisplayManager) StepFailed(result *model.StepResult, err error) {
	d.stopSpinner()
	color.New(color.FgRed).Printf("❌ %s [exit %d] %s\n",
		result.Name, result.ExitCode, formatDuration(result.Duration))
}

func (d *DisplayManager) Summary(summary *model.Summary) {
	d.stopSpinner()

	var parts []string
	if summary.SuccessCount > 0 {
		parts = append(parts, color.New(color.FgGreen).Sprintf("✅ %d passed", summary.SuccessCount))
	}
	if summary.FailureCount > 0 {
		parts = append(parts, color.New(color.FgRed).Sprintf("❌ %d failed", summary.FailureCount))
	}
	if summary.SkippedCount > 0 {
		parts = append(parts, color.New(color.FgYellow).Sprintf("⏭  %d skipped", summary.SkippedCount))
	}

	fmt.Printf("\n[%s | %s]\n",
		strings.Join(parts, " "),
		color.New(color.FgCyan).Sprint(summary.Duration.Round(time.Millisecond)))
}

func (d *DisplayManager) stopSpinner() {
	if d.spin.Active() {
		d.spin.Stop()
		fmt.Print("\r\033[K") // Clear spinner line
	}
}

func formatDuration(du time.Duration) string {
	if du < time.Second {
		return fmt.Sprintf("(%dms)", du.Milliseconds())
	}
	return fmt.Sprintf("(%.1fs)", du.Seconds())
}
