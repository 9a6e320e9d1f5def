package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/younginvestor"
	"github.com/google/subcommands"
)

type milestonesCmd struct{}

func (*milestonesCmd) Name() string     { return "milestones" }
func (*milestonesCmd) Synopsis() string { return "list the story milestones" }
func (*milestonesCmd) Usage() string {
	return `yi milestones

  Lists the story milestones, the reached ones are checked.
`
}

func (*milestonesCmd) SetFlags(f *flag.FlagSet) {}

func (c *milestonesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		p := s.game.Progress()
		for _, m := range younginvestor.Milestones() {
			mark := " "
			if p.IsMilestoneReached(m) {
				mark = "x"
			}
			fmt.Fprintf(stdout, "[%s] %s\n", mark, m)
		}
		return nil
	})
}
