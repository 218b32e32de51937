package model

import "time"

// CommandAction is a hook that runs an external command in response to
// a pipeline event. The event is handed to the command through PIPET_*
// environment variables; Env entries are layered on top of those.
type CommandAction struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"` // zero means the default hook timeout
	Env     []string      `yaml:"env,omitempty"`     // KEY=VALUE pairs
}
