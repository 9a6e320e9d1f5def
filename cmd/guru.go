package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/younginvestor/guru"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type guruCmd struct {
	chat bool
}

func (*guruCmd) Name() string     { return "guru" }
func (*guruCmd) Synopsis() string { return "meet the investment guru" }
func (*guruCmd) Usage() string {
	return `yi guru [-chat] [<question>...]

  Meets the guru in the hotel room. With -chat the conversation goes on with
  the guru through Gemini; set GEMINI_API_KEY to use it. The question, when
  given, is asked first.
`
}

func (c *guruCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.chat, "chat", false, "keep talking with the guru")
}

func (c *guruCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		gu := guru.New(stdout, stdin, s.cfg.GeminiModel, s.game)
		gu.Render = render
		if err := gu.Intro(s.game.Language()); err != nil {
			return err
		}
		s.game.CompleteGuruMeeting()
		if !c.chat {
			return nil
		}

		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return err
		}
		var prompts []string
		if f.NArg() > 0 {
			prompts = append(prompts, strings.Join(f.Args(), " "))
		}
		return gu.Run(ctx, client, prompts...)
	})
}
