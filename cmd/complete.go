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

type completeCmd struct{}

// completeEvents lists the events and whether they take an id.
var completeEvents = map[string]bool{
	"lesson":     true,
	"minigame":   true,
	"bank":       false,
	"barmitzvah": false,
	"guru":       false,
	"turn":       false,
	"waiting":    false,
}

func (*completeCmd) Name() string     { return "complete" }
func (*completeCmd) Synopsis() string { return "record a story event" }
func (*completeCmd) Usage() string {
	return `yi complete <event> [<id>]

  Records a story event:
    lesson <n>        a school lesson was attended
    minigame <id>     a mini-game was finished (percents, stockquiz, asteroids, tradingSim)
    bank              the bank account is opened, with its welcome gift
    barmitzvah        the bar mitzvah took place, with its gift
    guru              the guru was met
    turn              a turn passed
    waiting           the waiting period after a trading round is over
`
}

func (*completeCmd) SetFlags(f *flag.FlagSet) {}

func (c *completeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing event")
		return subcommands.ExitUsageError
	}
	event := f.Arg(0)
	needsID, ok := completeEvents[event]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown event %q\n", event)
		return subcommands.ExitUsageError
	}
	if needsID != (f.NArg() == 2) || f.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "Error: wrong arguments for %q\n", event)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		g := s.game
		switch event {
		case "lesson":
			id, err := strconv.Atoi(f.Arg(1))
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid lesson %q", f.Arg(1))
			}
			g.CompleteLesson(id)
		case "minigame":
			g.CompleteMiniGame(f.Arg(1))
		case "bank":
			if !g.OpenBankAccount() {
				fmt.Fprintln(stdout, "The bank account is already open.")
				return nil
			}
			fmt.Fprintf(stdout, "Bank account opened, you received %s.\n", younginvestor.BankGift)
			return nil
		case "barmitzvah":
			if !g.CompleteBarMitzvah() {
				fmt.Fprintln(stdout, "The bar mitzvah already took place.")
				return nil
			}
			fmt.Fprintf(stdout, "Mazal tov! You received %s.\n", younginvestor.BarMitzvahGift)
			return nil
		case "guru":
			g.CompleteGuruMeeting()
		case "turn":
			g.AdvanceTurn()
		case "waiting":
			g.EndWaitingPeriod()
		}
		fmt.Fprintf(stdout, "%s recorded.\n", event)
		return nil
	})
}
