package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/younginvestor"
	"github.com/google/subcommands"
)

type newCmd struct {
	name  string
	lang  string
	cash  string
	force bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "start a new game in the save slot" }
func (*newCmd) Usage() string {
	return `yi new [-name <player>] [-lang he|en] [-cash <amount>] [-f]

  Starts a new game in the save slot. An existing game is only replaced with -f.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "player's name")
	f.StringVar(&c.lang, "lang", string(younginvestor.Hebrew), "game language, he or en")
	f.StringVar(&c.cash, "cash", "0", "starting cash")
	f.BoolVar(&c.force, "f", false, "replace the game already saved in the slot")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lang, err := younginvestor.ParseLanguage(c.lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cash, err := younginvestor.ParseMoney(c.cash)
	if err != nil || cash.IsNegative() {
		fmt.Fprintf(os.Stderr, "Error: invalid starting cash %q\n", c.cash)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		if !s.isNew && !c.force {
			return fmt.Errorf("slot %q already holds a game, use -f to replace it", s.cfg.Slot)
		}
		g := younginvestor.NewGame(s.game.Catalog(),
			younginvestor.WithPlayerName(c.name),
			younginvestor.WithLanguage(lang),
			younginvestor.WithCash(cash),
		)
		if err := s.store.Save(ctx, s.cfg.Slot, g.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "New game started in slot %q.\n", s.cfg.Slot)
		return nil
	})
}
