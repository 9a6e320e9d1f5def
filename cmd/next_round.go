package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/younginvestor/renderer"
	"github.com/google/subcommands"
)

type nextRoundCmd struct {
	wait bool
}

func (*nextRoundCmd) Name() string     { return "next-round" }
func (*nextRoundCmd) Synopsis() string { return "close the current trading round" }
func (*nextRoundCmd) Usage() string {
	return `yi next-round [-wait]

  Closes the current trading round: its prices become the portfolio's prices
  and the next round opens. With -wait the waiting period is skipped too and
  the growth of the closed round is revealed.
`
}

func (c *nextRoundCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.wait, "wait", false, "also end the waiting period")
}

func (c *nextRoundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		before := s.game.Round()
		s.game.CompleteTradeRound()
		if c.wait {
			s.game.EndWaitingPeriod()
		}
		fmt.Fprintf(stdout, "Round %d complete. Net worth: %s\n", before, s.game.NetWorth())
		if s.game.Round() != before {
			printMarkdown(renderer.RenderRound(renderer.NewRound(s.game, s.game.Round())))
		}
		return nil
	})
}
