package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose logging",
			Value: false,
		},
	)

	return &cli.Command{
		Name:    "pipet",
		Usage:   "Fail-fast pipeline runner",
		Version: "0.1.0",
		Description: `pipet runs the steps of a YAML pipeline strictly in order and stops on
the first step that exits non-zero, propagating that exit code.

By default it runs pipeline.yml in the current directory.
Pass a path argument to run a different pipeline file.`,
		Flags:     flags,
		Action:    RunPipeline,
		ArgsUsage: "[pipeline-file]",
		Commands: []*cli.Command{
			NewInitCommand(),
			NewConfigCommand(),
		},
	}
}
