package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hiroq/pipet/pkg/usecase"
)

// NewConfigCommand creates a new config command
func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage pipet hooks configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Generate hooks configuration template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for config file",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Force overwrite existing file",
					},
				},
				Action: configInitAction,
			},
		},
	}
}

func configInitAction(ctx context.Context, cmd *cli.Command) error {
	service := usecase.NewConfigService()

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = service.GetDefaultPath()
	}

	if err := service.SaveTemplate(outputPath, cmd.Bool("force")); err != nil {
		return fmt.Errorf("failed to create config template: %w", err)
	}

	fmt.Printf("Wrote hooks config template to %s\n", outputPath)
	return nil
}

// NewInitCommand creates the pipeline template command
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Generate a pipeline file template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path for pipeline file",
				Value:   DefaultPipelineFile,
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Force overwrite existing file",
			},
		},
		Action: initAction,
	}
}

// pipelineTemplate is the classic local CI sequence: tests, style
// checks, lint, clean the generated output, regenerate, validate.
const pipelineTemplate = `name: build

steps:
  - name: unit tests
    run: [pytest, -v, tests/]

  - name: code style
    run: [pycodestyle, mysite]

  - name: docstring style
    run: [pydocstyle, mysite]

  - name: lint
    run: [pylint, --rcfile, pyproject.toml, mysite]

  - name: clean output
    remove: mysite/html

  - name: generate site
    run: [mysite-generator, mysite]

  - name: validate html
    run: [html5validator, --ignore, JAVA_TOOL_OPTIONS, --root, html]

  - name: validate generated html
    run: [html5validator, --ignore, JAVA_TOOL_OPTIONS, --root, mysite/html]
`

func initAction(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")

	if !cmd.Bool("force") {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("pipeline file already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.WriteFile(outputPath, []byte(pipelineTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write pipeline template: %w", err)
	}

	fmt.Printf("Wrote pipeline template to %s\n", outputPath)
	return nil
}
