package model

import "time"

// HookEvent represents a type of pipeline event
type HookEvent string

const (
	HookStepSuccess     HookEvent = "step_success"
	HookStepFailure     HookEvent = "step_failure"
	HookCompleteSuccess HookEvent = "complete_success"
	HookCompleteFailure HookEvent = "complete_failure"
)

// PipelineEvent contains information about a pipeline event
type PipelineEvent struct {
	Type     HookEvent
	Pipeline string
	Step     string
	ExitCode int
	Duration time.Duration
}
