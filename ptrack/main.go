package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/tracker/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Exits when invoked by the shell for completion.
	cmd.Completion().Complete("ptrack")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		// no subcommand runs the whole pipeline, global flags are kept.
		flag.CommandLine.Parse(append(os.Args[1:], cmd.DefaultCommand))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
