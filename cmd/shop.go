package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/younginvestor/content"
	"github.com/google/subcommands"
)

type shopCmd struct{}

func (*shopCmd) Name() string     { return "shop" }
func (*shopCmd) Synopsis() string { return "visit the computer shop" }
func (*shopCmd) Usage() string {
	return `yi shop [buy <item>]

  Lists the computers for sale, or buys one with the player's cash.
`
}

func (*shopCmd) SetFlags(f *flag.FlagSet) {}

func (c *shopCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	buying := f.NArg() > 0
	if buying && (f.Arg(0) != "buy" || f.NArg() != 2) {
		fmt.Fprintln(os.Stderr, "Error: usage is yi shop buy <item>")
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		lang := s.game.Language()
		if !buying {
			items, err := content.Shop()
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(stdout, "%-8s %-20s %12s  %s\n", it.ID, it.Name.In(lang), it.Price, it.Description.In(lang))
			}
			fmt.Fprintf(stdout, "Cash: %s\n", s.game.Cash())
			return nil
		}

		item, err := content.ShopItem(f.Arg(1))
		if err != nil {
			return err
		}
		if err := s.game.BuyComputer(item.Price); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "You bought the %s for %s. Cash: %s\n", item.Name.In(lang), item.Price, s.game.Cash())
		return nil
	})
}
