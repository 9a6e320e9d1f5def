package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/younginvestor/renderer"
	"github.com/google/subcommands"
)

type flowCmd struct{}

func (*flowCmd) Name() string     { return "flow" }
func (*flowCmd) Synopsis() string { return "follow the guided story" }
func (*flowCmd) Usage() string {
	return `yi flow [next | previous | goto <index>]

  Without argument, displays the story steps and where the player stands.
  next and previous move along the story; next refuses steps whose milestone
  is not reached. goto jumps to a step without checking milestones.
`
}

func (*flowCmd) SetFlags(f *flag.FlagSet) {}

func (c *flowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action := f.Arg(0)
	index := 0
	switch action {
	case "", "next", "previous":
		if f.NArg() > 1 {
			fmt.Fprintln(os.Stderr, "Error: too many arguments")
			return subcommands.ExitUsageError
		}
	case "goto":
		n, err := strconv.Atoi(f.Arg(1))
		if err != nil || f.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "Error: goto takes a step index")
			return subcommands.ExitUsageError
		}
		index = n
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown flow action %q\n", action)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		g := s.game
		switch action {
		case "":
			printMarkdown(renderer.RenderFlow(renderer.NewFlow(g)))
			return nil
		case "next":
			step, err := g.NextStep()
			if err != nil {
				return err
			}
			if step == nil {
				fmt.Fprintln(stdout, "The story is over.")
				return nil
			}
		case "previous":
			if g.PreviousStep() == nil {
				fmt.Fprintln(stdout, "Already at the start of the story.")
				return nil
			}
		case "goto":
			g.GoToStep(index)
		}
		step, i := g.Flow()
		fmt.Fprintf(stdout, "%d. %s\n", i, step)
		return nil
	})
}
