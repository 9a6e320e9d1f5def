// Package guru runs the follow-up conversation with the investment guru.
//
// The guru is a Gemini chat that can look at the player's game through
// function calls: their portfolio, the quotes of a round and the lessons.
package guru

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/content"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Guru handles the chat session with the player.
type Guru struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
	// Render formats the guru's markdown answers, plain text when nil.
	Render func(string) string
}

// New creates the guru for g, answering in the game's language.
func New(w io.Writer, r io.Reader, model string, g *younginvestor.Game) *Guru {
	if model == "" {
		model = DefaultModel
	}
	return &Guru{
		w:      w,
		r:      bufio.NewReader(r),
		Expert: NewGuruExpert(model, g),
	}
}

// Intro writes the scripted meeting with the guru.
func (gu *Guru) Intro(lang younginvestor.Language) error {
	lines, err := content.GuruDialogue()
	if err != nil {
		return err
	}
	for _, l := range lines {
		who := "Guru"
		if l.Speaker == content.SpeakerPlayer {
			who = "You"
		}
		fmt.Fprintf(gu.w, "%s: %s\n", who, l.Text.In(lang))
	}
	return nil
}

const prompt = "guru> "

// Run starts the interactive session. prompts are sent before reading the
// player's input.
func (gu *Guru) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if gu.Expert.chat == nil {
		if err := gu.Expert.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(gu.w, "Ask the guru anything about investing. Type 'bye' to leave.")

	for {
		fmt.Fprint(gu.w, prompt)
		var input string

		// Flush prompts from the list and then ask the player.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(gu.w, input)
		} else {
			var err error
			input, err = gu.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := gu.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		text := answer.Parts[0].Text
		if gu.Render != nil {
			text = gu.Render(text)
		}
		fmt.Fprintln(gu.w, text)
	}
}
