package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
	"github.com/hiroq/pipet/pkg/usecase"
)

func RunPipeline(ctx context.Context, cmd *cli.Command) error {
	logLevel := slog.LevelWarn
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	} else if cmd.Bool("verbose") {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	ctx = ctxlog.With(ctx, logger)

	config := &Config{
		PipelineFile: cmd.Args().First(),
		ConfigPath:   cmd.String("config"),
		Trace:        cmd.Bool("trace"),
		Silent:       cmd.Bool("silent"),
		TUI:          cmd.Bool("tui"),
	}
	if config.PipelineFile == "" {
		config.PipelineFile = DefaultPipelineFile
	}

	pipeline, err := model.ParsePipelineFile(config.PipelineFile)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w\nRun 'pipet init' to create a pipeline file", err)
	}

	hooksConfig, err := loadHooksConfig(ctx, config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load hooks config: %w", err)
	}
	hookExec := usecase.NewHookExecutor(hooksConfig)

	var notifier interfaces.Notifier
	if config.Silent {
		notifier = usecase.NewNoOpNotifier()
	} else {
		notifier = usecase.NewSoundNotifier()
	}

	if config.TUI {
		return runWithTUI(ctx, pipeline, hookExec, notifier)
	}

	display := NewDisplayManager(pipeline.Name)

	runner := usecase.NewRunner(usecase.RunnerOptions{
		Pipeline: pipeline,
		Display:  display,
		Hooks:    hookExec,
		Notifier: notifier,
		Trace:    config.Trace,
	})

	fmt.Printf("🚀 %s (%d steps)\n\n", pipeline.Name, len(pipeline.Steps))

	runErr := runner.Execute(ctx)
	hookExec.WaitForCompletion()
	return runErr
}

// loadHooksConfig resolves the hooks config: explicit path, then the
// working directory, then the user-level default.
func loadHooksConfig(ctx context.Context, path string) (*model.Config, error) {
	logger := ctxlog.From(ctx)
	service := usecase.NewConfigService()

	if path != "" {
		return service.Load(path)
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	config, foundPath, err := service.LoadFromDirectory(currentDir)
	if err != nil {
		return nil, err
	}
	if foundPath != "" {
		logger.Debug("loaded hooks config", slog.String("path", foundPath))
		return config, nil
	}

	return service.LoadDefault()
}
