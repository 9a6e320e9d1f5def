package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/younginvestor"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the saved game with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `yi query <jsonpath>

  Evaluates a JSONPath expression against the saved snapshot.

Usage Examples:
$ yi query '$.cash'
$ yi query '$.portfolio.solar.shares'
$ yi query '$.journal[?(@.side=="buy")].quantity'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	return withSession(ctx, func(s *session) error {
		v, err := query(s.game.Snapshot(), path)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	})
}

// query evaluates path on the JSON form of snap.
func query(snap younginvestor.Snapshot, path string) (any, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}
