package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/content"
	"github.com/etnz/younginvestor/renderer"
	"github.com/google/subcommands"
)

type lessonCmd struct {
	lang string
	html bool
	done bool
}

func (*lessonCmd) Name() string     { return "lesson" }
func (*lessonCmd) Synopsis() string { return "read a school lesson" }
func (*lessonCmd) Usage() string {
	return `yi lesson [-lang he|en] [-html] [-done] <n>

  Displays a school lesson in the game's language. With -done the lesson is
  recorded as attended.
`
}

func (c *lessonCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lang, "lang", "", "lesson language, the game's language by default")
	f.BoolVar(&c.html, "html", false, "print the lesson as HTML")
	f.BoolVar(&c.done, "done", false, "record the lesson as attended")
}

func (c *lessonCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil || f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: lesson takes a lesson number, one of %v\n", content.Lessons())
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		lang := s.game.Language()
		if c.lang != "" {
			if lang, err = younginvestor.ParseLanguage(c.lang); err != nil {
				return err
			}
		}
		if c.html {
			html, err := content.LessonHTML(id, lang)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, string(html))
		} else {
			l, err := content.LoadLesson(id, lang)
			if err != nil {
				return err
			}
			printMarkdown(renderer.RenderLesson(l))
		}
		if c.done {
			s.game.CompleteLesson(id)
		}
		return nil
	})
}
