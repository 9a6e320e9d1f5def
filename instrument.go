package younginvestor

import (
	"fmt"
	"slices"
)

// Instrument identifies one of the stocks traded in the game.
type Instrument string

// The closed set of tradable instruments.
const (
	Solar  Instrument = "solar"
	Koogle Instrument = "koogle"
	Sesla  Instrument = "sesla"
	Lemon  Instrument = "lemon"
)

// Instruments lists every instrument in display order.
var Instruments = []Instrument{Solar, Koogle, Sesla, Lemon}

var displayNames = map[Instrument]Text{
	Solar:  {He: "סולאר", En: "Solar"},
	Koogle: {He: "קוגל", En: "Koogle"},
	Sesla:  {He: "ססלה", En: "Sesla"},
	Lemon:  {He: "לימון", En: "Lemon"},
}

// ParseInstrument returns the instrument named s.
func ParseInstrument(s string) (Instrument, error) {
	i := Instrument(s)
	if !i.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownInstrument, s)
	}
	return i, nil
}

// Valid reports whether i belongs to the closed set of instruments.
func (i Instrument) Valid() bool { return slices.Contains(Instruments, i) }

// DisplayName returns the instrument's name in lang.
func (i Instrument) DisplayName(lang Language) string {
	t, ok := displayNames[i]
	if !ok {
		return string(i)
	}
	return t.In(lang)
}

// Language is a player's language preference.
type Language string

const (
	Hebrew  Language = "he"
	English Language = "en"
)

// ParseLanguage returns the language for code s.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case Hebrew, English:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// Text is a piece of text authored in both game languages.
type Text struct {
	He string `json:"he"`
	En string `json:"en"`
}

// In returns the text in lang, falling back to Hebrew, the game's default.
func (t Text) In(lang Language) string {
	if lang == English && t.En != "" {
		return t.En
	}
	return t.He
}
