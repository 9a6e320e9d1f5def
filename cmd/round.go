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

type roundCmd struct{}

func (*roundCmd) Name() string     { return "round" }
func (*roundCmd) Synopsis() string { return "display the quotes and news of a trading round" }
func (*roundCmd) Usage() string {
	return `yi round [<round>]

  Displays the prices, price changes and news of a trading round, the current one by default.
`
}

func (*roundCmd) SetFlags(f *flag.FlagSet) {}

func (c *roundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	round := 0
	if f.NArg() > 0 {
		n, err := strconv.Atoi(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid round %q\n", f.Arg(0))
			return subcommands.ExitUsageError
		}
		round = n
	}
	return withSession(ctx, func(s *session) error {
		if round == 0 {
			round = s.game.Round()
		}
		printMarkdown(renderer.RenderRound(renderer.NewRound(s.game, round)))
		return nil
	})
}
