package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/gplot"
)

var logFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Set logging level more verbose to include info level logs",
		Destination: &logOpts.Verbose,
	},
	&cli.BoolFlag{
		Name:        "veryverbose",
		Aliases:     []string{"vv"},
		Usage:       "Set logging level more verbose to include debug level logs",
		Destination: &logOpts.VeryVerbose,
	},
}

var logOpts struct {
	Verbose     bool
	VeryVerbose bool
}

// setupLogging routes library logs to stderr. Only warnings are shown
// unless one of the verbose flags is set.
func setupLogging() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if logOpts.Verbose {
		level.Set(slog.LevelInfo)
	}
	if logOpts.VeryVerbose {
		level.Set(slog.LevelDebug)
	}
	gplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
