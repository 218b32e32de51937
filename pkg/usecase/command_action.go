package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

type commandAction struct{}

// NewCommandAction creates a new CommandAction instance
func NewCommandAction() interfaces.ActionExecutor {
	return &commandAction{}
}

// Execute runs a hook command. Unlike step commands, hook output is
// captured and logged rather than streamed.
func (c *commandAction) Execute(ctx context.Context, action model.Action, event model.PipelineEvent) error {
	logger := ctxlog.From(ctx)

	cmdAction, err := action.ToCommandAction()
	if err != nil {
		return goerr.Wrap(err, "failed to parse command action")
	}

	env := c.prepareEnv(event)
	if len(cmdAction.Env) > 0 {
		env = append(env, cmdAction.Env...)
	}

	timeout := cmdAction.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	if err := c.executeCommand(ctx, cmdAction, env, timeout); err != nil {
		logger.Error("Hook command execution failed",
			slog.String("command", cmdAction.Command),
			slog.Any("args", cmdAction.Args),
			slog.String("error", err.Error()),
		)
		return goerr.Wrap(err, "hook command execution failed")
	}

	logger.Debug("Hook command executed",
		slog.String("command", cmdAction.Command),
		slog.String("event", string(event.Type)),
	)
	return nil
}

// prepareEnv exposes the pipeline event to the hook command
func (c *commandAction) prepareEnv(event model.PipelineEvent) []string {
	env := os.Environ()

	pipetEnv := map[string]string{
		"PIPET_EVENT_TYPE": string(event.Type),
		"PIPET_PIPELINE":   event.Pipeline,
		"PIPET_STEP":       event.Step,
		"PIPET_EXIT_CODE":  fmt.Sprintf("%d", event.ExitCode),
	}

	for key, value := range pipetEnv {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

func (c *commandAction) executeCommand(ctx context.Context, cmdAction *model.CommandAction, env []string, timeout time.Duration) error {
	logger := ctxlog.From(ctx)

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Resolve references against the env the child will see, so
	// $PIPET_* and action env entries survive into command and args.
	expand := func(s string) string {
		return os.Expand(s, func(name string) string {
			for i := len(env) - 1; i >= 0; i-- {
				if key, value, ok := strings.Cut(env[i], "="); ok && key == name {
					return value
				}
			}
			return ""
		})
	}

	command := expand(cmdAction.Command)
	args := make([]string, len(cmdAction.Args))
	for i, arg := range cmdAction.Args {
		args[i] = expand(arg)
	}

	cmd := exec.CommandContext(cmdCtx, command, args...) // #nosec G204 - command is from config file
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if stdout.Len() > 0 {
		logger.Debug("Hook command stdout",
			slog.String("command", command),
			slog.String("stdout", stdout.String()),
		)
	}
	if stderr.Len() > 0 {
		logger.Debug("Hook command stderr",
			slog.String("command", command),
			slog.String("stderr", stderr.String()),
		)
	}

	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return goerr.New(fmt.Sprintf("hook command timed out after %s", timeout))
		}
		errMsg := fmt.Sprintf("hook command failed: %v", err)
		if stderr.Len() > 0 {
			errMsg += fmt.Sprintf(", stderr: %s", stderr.String())
		}
		return goerr.New(errMsg)
	}

	return nil
}
