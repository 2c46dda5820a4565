package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/rcparams"
)

var formatsCommand = &cli.Command{
	Name:  "formats",
	Usage: "List the registered output formats",
	Action: func(cc *cli.Context) error {
		for _, f := range backend.Formats() {
			fmt.Fprintln(cc.App.Writer, f)
		}
		return nil
	},
}

var rcCommand = &cli.Command{
	Name:      "rc",
	Usage:     "Print rc parameters as YAML",
	ArgsUsage: "[prefix]",
	Action:    rcAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "rc",
			Usage: "Apply this rc file before printing",
		},
	},
}

// rcAction prints the keys that start with the optional prefix, one per
// line, in a form LoadFile reads back.
func rcAction(cc *cli.Context) error {
	p := rcparams.New()
	if path := cc.String("rc"); path != "" {
		if err := p.LoadFile(path); err != nil {
			return err
		}
	}
	prefix := cc.Args().First()
	snap := p.Snapshot()
	for _, k := range rcparams.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		b, err := yaml.Marshal(map[string]any{k: snap[k]})
		if err != nil {
			return fmt.Errorf("rc: %s: %w", k, err)
		}
		fmt.Fprint(cc.App.Writer, string(b))
	}
	return nil
}
