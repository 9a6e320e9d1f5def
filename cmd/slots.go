package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type slotsCmd struct{}

func (*slotsCmd) Name() string     { return "slots" }
func (*slotsCmd) Synopsis() string { return "list the saved games" }
func (*slotsCmd) Usage() string {
	return `yi slots

  Lists the save slots of the store, the current one is marked with a star.
`
}

func (*slotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *slotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		names, err := s.store.List(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			mark := " "
			if name == s.cfg.Slot {
				mark = "*"
			}
			fmt.Fprintf(stdout, "%s %s\n", mark, name)
		}
		return nil
	})
}
