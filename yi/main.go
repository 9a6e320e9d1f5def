// Command yi plays the Young Investor game in the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/younginvestor/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// answers the shell when it asks for completions, and exits
	cmd.Completion(commander).Complete("yi")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
