package cli

import (
	"github.com/urfave/cli/v3"
)

// DefaultPipelineFile is run when no path argument is given.
const DefaultPipelineFile = "pipeline.yml"

type Config struct {
	PipelineFile string
	ConfigPath   string
	Trace        bool
	Silent       bool
	TUI          bool
}

func DefineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to hooks config file",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "Echo each command before running it",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "Disable sound notifications",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "tui",
			Usage: "Show a full-screen live step table",
			Value: false,
		},
	}
}
