package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/younginvestor/renderer"
	"github.com/google/subcommands"
)

type statusCmd struct {
	journal bool
	json    bool
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display the player's portfolio and progress" }
func (*statusCmd) Usage() string {
	return `yi status [-journal] [-json]

  Displays cash, stocks, net worth and the story milestones.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.journal, "journal", false, "also list every executed trade")
	f.BoolVar(&c.json, "json", false, "print the saved snapshot as JSON instead")
}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		if c.json {
			data, err := json.MarshalIndent(s.game.Snapshot(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, string(data))
			return nil
		}
		md := renderer.RenderStatus(renderer.NewStatus(s.game))
		if c.journal {
			md += "\n" + renderer.RenderJournal(renderer.NewJournal(s.game))
		}
		printMarkdown(md)
		return nil
	})
}
