package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/younginvestor/content"
	"github.com/google/subcommands"
)

type quizCmd struct{}

func (*quizCmd) Name() string     { return "quiz" }
func (*quizCmd) Synopsis() string { return "play a quiz mini-game" }
func (*quizCmd) Usage() string {
	return fmt.Sprintf(`yi quiz <name>

  Plays a quiz: answer each question with a or b. Finishing the quiz records
  the mini-game as completed. Quizzes: %s
`, strings.Join(content.Quizzes(), ", "))
}

func (*quizCmd) SetFlags(f *flag.FlagSet) {}

func (c *quizCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: quiz takes a quiz name, one of %v\n", content.Quizzes())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	questions, err := content.Quiz(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		lang := s.game.Language()
		in := bufio.NewScanner(stdin)
		answers := make([]bool, 0, len(questions))
		for k, q := range questions {
			fmt.Fprintf(stdout, "%d. %s\n  a) %s\n  b) %s\n", k+1, q.Question.In(lang), q.OptionA.In(lang), q.OptionB.In(lang))
			pickB, ok := readChoice(in)
			if !ok {
				return fmt.Errorf("quiz interrupted")
			}
			answers = append(answers, pickB)
			fmt.Fprintln(stdout, q.Feedback(pickB, lang))
		}
		fmt.Fprintf(stdout, "Score: %d/%d\n", content.Score(questions, answers), len(questions))
		s.game.CompleteMiniGame(name)
		return nil
	})
}

// readChoice reads answers until a or b is given. It reports false at the end
// of the input.
func readChoice(in *bufio.Scanner) (pickB bool, ok bool) {
	for {
		fmt.Fprint(stdout, "> ")
		if !in.Scan() {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "a":
			return false, true
		case "b":
			return true, true
		}
		fmt.Fprintln(stdout, "Please answer a or b.")
	}
}
