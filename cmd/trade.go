package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/younginvestor"
	"github.com/google/subcommands"
)

// tradeCmd is both the buy and the sell command.
type tradeCmd struct {
	side younginvestor.Side
}

func (c *tradeCmd) Name() string { return string(c.side) }
func (c *tradeCmd) Synopsis() string {
	return fmt.Sprintf("%s shares at the current round's price", c.side)
}
func (c *tradeCmd) Usage() string {
	all := "max"
	if c.side == younginvestor.Sell {
		all = "all"
	}
	return fmt.Sprintf(`yi %s <instrument> <quantity|%s>

  %ss shares of solar, koogle, sesla or lemon at the current round's price.
  Use %q as the quantity to trade as many shares as possible.
`, c.side, all, c.side, all)
}

func (*tradeCmd) SetFlags(f *flag.FlagSet) {}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Error: %s takes an instrument and a quantity\n", c.side)
		return subcommands.ExitUsageError
	}
	i, err := younginvestor.ParseInstrument(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		quantity, err := c.quantity(s.game, i, f.Arg(1))
		if err != nil {
			return err
		}
		var t younginvestor.Trade
		if c.side == younginvestor.Buy {
			t, err = s.game.Buy(i, quantity)
		} else {
			t, err = s.game.Sell(i, quantity)
		}
		if err != nil {
			return err
		}
		verb := "Bought"
		if t.Side == younginvestor.Sell {
			verb = "Sold"
		}
		fmt.Fprintf(stdout, "%s %d %s at %s for %s. Cash: %s\n",
			verb, t.Quantity, i.DisplayName(s.game.Language()), t.Price, t.Amount(), s.game.Cash())
		return nil
	})
}

// quantity parses arg, resolving "max" and "all".
func (c *tradeCmd) quantity(g *younginvestor.Game, i younginvestor.Instrument, arg string) (int64, error) {
	switch {
	case c.side == younginvestor.Buy && arg == "max":
		return g.Quote(i).MaxShares, nil
	case c.side == younginvestor.Sell && arg == "all":
		return g.Holding(i).Shares, nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", arg)
	}
	return n, nil
}
