package content

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/etnz/younginvestor"
)

// Question is a two-choice quiz question.
type Question struct {
	Question        younginvestor.Text `json:"question"`
	OptionA         younginvestor.Text `json:"optionA"`
	OptionB         younginvestor.Text `json:"optionB"`
	CorrectIsB      bool               `json:"correctIsB"`
	FeedbackCorrect younginvestor.Text `json:"feedbackCorrect"`
	FeedbackWrong   younginvestor.Text `json:"feedbackWrong"`
}

// Check reports whether picking B (or A when pickB is false) is right.
func (q Question) Check(pickB bool) bool { return pickB == q.CorrectIsB }

// Feedback returns what the player is told after answering.
func (q Question) Feedback(pickB bool, lang younginvestor.Language) string {
	if q.Check(pickB) {
		return q.FeedbackCorrect.In(lang)
	}
	return q.FeedbackWrong.In(lang)
}

var quizzes = decode[map[string][]Question]("quizzes.json")

// Quizzes returns the names of the quizzes, sorted.
func Quizzes() []string {
	all, err := quizzes()
	if err != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(all))
}

// Quiz returns the questions of the named quiz, a mini-game id such as
// younginvestor.PercentsGameID.
func Quiz(name string) ([]Question, error) {
	all, err := quizzes()
	if err != nil {
		return nil, err
	}
	q, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("quiz %q: %w", name, fs.ErrNotExist)
	}
	return slices.Clone(q), nil
}

// Score counts the right answers. answers[k] is true when B was picked for
// question k; unanswered questions count as wrong.
func Score(questions []Question, answers []bool) int {
	score := 0
	for k, q := range questions {
		if k < len(answers) && q.Check(answers[k]) {
			score++
		}
	}
	return score
}
