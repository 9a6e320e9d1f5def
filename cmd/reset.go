package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type resetCmd struct {
	delete bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "start the game over" }
func (*resetCmd) Usage() string {
	return `yi reset [-delete]

  Starts the game over, keeping the language. With -delete the save slot is removed instead.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.delete, "delete", false, "delete the save slot")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		if c.delete {
			if err := s.store.Delete(ctx, s.cfg.Slot); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Slot %q deleted.\n", s.cfg.Slot)
			return nil
		}
		s.game.Reset()
		fmt.Fprintln(stdout, "Game reset.")
		return nil
	})
}
