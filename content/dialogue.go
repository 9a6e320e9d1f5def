package content

import (
	"slices"

	"github.com/etnz/younginvestor"
)

// Speaker of a dialogue line.
const (
	SpeakerGuru   = "guru"
	SpeakerPlayer = "player"
)

// DialogueLine is one line of the conversation with the guru.
type DialogueLine struct {
	Speaker string             `json:"speaker"`
	Text    younginvestor.Text `json:"text"`
}

var dialogue = decode[[]DialogueLine]("guru.json")

// GuruDialogue returns the scripted conversation with the guru.
func GuruDialogue() ([]DialogueLine, error) {
	lines, err := dialogue()
	return slices.Clone(lines), err
}
