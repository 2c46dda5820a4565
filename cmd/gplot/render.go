package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/figure"
	"github.com/gogpu/gplot/rcparams"
)

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "Render a demo figure to a file",
	ArgsUsage: "<demo>",
	Description: "Demos:\n" + demoHelp() +
		"The output format follows the file extension unless --format is given.",
	Action: renderAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "File to write; <demo>.<format> when empty",
			Destination: &renderOpts.output,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format such as png, pdf, svg or ps",
			Destination: &renderOpts.format,
		},
		&cli.Float64Flag{
			Name:        "dpi",
			Usage:       "Output resolution; savefig.dpi when zero",
			Destination: &renderOpts.dpi,
		},
		&cli.Float64SliceFlag{
			Name:  "size",
			Usage: "Figure width and height in inches; figure.figsize when unset",
		},
		&cli.StringFlag{
			Name:        "rc",
			Usage:       "YAML or TOML file of rc parameters applied before rendering",
			Destination: &renderOpts.rcFile,
		},
		&cli.BoolFlag{
			Name:        "watch",
			Usage:       "Render again whenever the --rc file changes",
			Destination: &renderOpts.watch,
		},
	},
}

var renderOpts struct {
	output string
	format string
	dpi    float64
	rcFile string
	watch  bool
}

func renderAction(cc *cli.Context) error {
	if cc.NArg() != 1 {
		return fmt.Errorf("render: want one demo name, one of %s", strings.Join(demoNames(), ", "))
	}
	d, ok := demos[cc.Args().First()]
	if !ok {
		return fmt.Errorf("render: unknown demo %q, want one of %s", cc.Args().First(), strings.Join(demoNames(), ", "))
	}
	job := renderJob{
		demo:   d,
		output: renderOpts.output,
		save:   figure.SaveOptions{Format: renderOpts.format, DPI: renderOpts.dpi},
	}
	if size := cc.Float64Slice("size"); len(size) > 0 {
		if len(size) != 2 {
			return fmt.Errorf("render: --size wants width and height, got %d values", len(size))
		}
		job.size = size
	}
	if job.output == "" {
		format := renderOpts.format
		if format == "" {
			format = rcparams.Default().String("savefig.format")
		}
		job.output = cc.Args().First() + "." + format
	}

	rc := rcparams.Default()
	if renderOpts.rcFile != "" {
		if err := rc.LoadFile(renderOpts.rcFile); err != nil {
			return err
		}
	}
	if err := job.run(); err != nil {
		return err
	}
	if !renderOpts.watch {
		return nil
	}
	if renderOpts.rcFile == "" {
		return errors.New("render: --watch needs --rc")
	}

	ctx, stop := signal.NotifyContext(cc.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	gplot.Logger().Info("watching rc file", "path", renderOpts.rcFile)
	err := rc.Watch(ctx, renderOpts.rcFile, func(*rcparams.Params) {
		if err := job.run(); err != nil {
			gplot.Logger().Error("render failed", "err", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type renderJob struct {
	demo   demo
	size   []float64
	output string
	save   figure.SaveOptions
}

// run builds a fresh figure so rc changes since the last run apply.
func (j renderJob) run() error {
	var opts []figure.Option
	if j.size != nil {
		opts = append(opts, figure.WithSize(j.size[0], j.size[1]))
	}
	f, err := figure.New(opts...)
	if err != nil {
		return err
	}
	if err := j.demo.build(f); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := f.SaveFig(j.output, j.save); err != nil {
		return err
	}
	fmt.Println(j.output)
	return nil
}
