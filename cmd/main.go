package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/algox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:    "algox",
		Usage:   "Browse, search and submit algorithms in a shared catalog",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   runner.Load,
		After:    runner.Close,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var fe *flowError
		switch {
		case errors.As(err, &fe):
			logger.Error(fe.Error())
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
