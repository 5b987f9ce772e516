package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/jquants/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	if flag.NArg() == 0 {
		// A bare invocation takes the listed securities snapshot.
		flag.CommandLine.Parse([]string{"listed"})
	}
	os.Exit(int(commander.Execute(context.Background())))
}
