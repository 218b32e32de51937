package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Duration decodes "30s"-style YAML values into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return goerr.Wrap(err, "timeout must be a duration string")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return goerr.Wrap(err, "invalid timeout format")
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type StepStatus string

const (
	StepStatusPending StepStatus = "pending"
	StepStatusRunning StepStatus = "running"
	StepStatusSuccess StepStatus = "success"
	StepStatusFailure StepStatus = "failure"
	StepStatusSkipped StepStatus = "skipped"
)

// Step is one named external-command invocation within a pipeline.
// Exactly one of Run (command argv) or Remove (directory to delete)
// must be set.
type Step struct {
	Name            string   `yaml:"name"`
	Run             []string `yaml:"run,omitempty"`
	Remove          string   `yaml:"remove,omitempty"`
	ContinueOnError bool     `yaml:"continue_on_error,omitempty"`
	Env             []string `yaml:"env,omitempty"`
	Dir             string   `yaml:"dir,omitempty"`
	Timeout         Duration `yaml:"timeout,omitempty"`
}

func (s Step) Validate() error {
	if s.Name == "" {
		return goerr.New("step must have a name")
	}
	if len(s.Run) > 0 && s.Remove != "" {
		return goerr.New("step " + s.Name + " sets both 'run' and 'remove'")
	}
	if len(s.Run) == 0 && s.Remove == "" {
		return goerr.New("step " + s.Name + " has no command")
	}
	if len(s.Run) > 0 && s.Run[0] == "" {
		return goerr.New("step " + s.Name + " has an empty command name")
	}
	for _, e := range s.Env {
		if !strings.Contains(e, "=") {
			return goerr.New("step " + s.Name + " env entry " + e + " is not KEY=VALUE")
		}
	}
	return nil
}

// IsRemove reports whether the step is the builtin directory removal.
func (s Step) IsRemove() bool {
	return s.Remove != ""
}

// CommandLine returns the literal command for trace output, the same
// line a shell running under `set -x` would echo.
func (s Step) CommandLine() string {
	if s.IsRemove() {
		return "rm -rf " + s.Remove
	}
	return strings.Join(s.Run, " ")
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	Name     string
	Status   StepStatus
	ExitCode int
	Duration time.Duration
}

type Summary struct {
	TotalSteps   int
	SuccessCount int
	FailureCount int
	SkippedCount int
	Duration     time.Duration
}

func (s *Summary) Failed() bool {
	return s.FailureCount > 0
}
