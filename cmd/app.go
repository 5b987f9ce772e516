// Package cmd implements the jqx CLI commands.
package cmd

import (
	"flag"

	"github.com/etnz/jquants"
	"github.com/google/subcommands"
)

// Commands lists the subcommands in registration order. A main package
// registers them on a subcommands.Commander and runs Execute on the
// user-selected one.
var Commands = []subcommands.Command{
	&listedCmd{},
	&quotesCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var baseURL = flag.String("base-url", jquants.DefaultBaseURL, "Base URL of the J-Quants API")
var outDir = flag.String("out", ".", "Directory where output files are written")
