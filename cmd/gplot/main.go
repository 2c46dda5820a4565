// Command gplot renders the bundled demo figures and inspects the rc
// parameters and output formats of the library.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	_ "github.com/gogpu/gplot/backend/all"
)

func main() {
	app := &cli.App{
		Name:     "gplot",
		HelpName: "gplot",
		Usage:    "Render plots to raster and vector files",
		Flags:    logFlags,
		Before: func(*cli.Context) error {
			setupLogging()
			return nil
		},
		Commands: []*cli.Command{
			renderCommand,
			formatsCommand,
			rcCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
