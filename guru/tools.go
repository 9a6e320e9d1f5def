package guru

import (
	"context"
	"fmt"

	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/content"
	"github.com/etnz/younginvestor/renderer"
	"google.golang.org/genai"
)

const instruction = `
You are the Guru, a kind and patient investment teacher in an educational game
for children. The player just met you in your hotel room after two trading rounds.

Explain ideas simply with short sentences and everyday examples. Encourage
diversification, patience and long term thinking. Never promise that a stock
will go up, the game is about learning, not about tips.

Use the tools to look at the player's portfolio and the quotes before giving
advice about their stocks. Answer in the player's language: %s.
`

// NewGuruExpert creates the guru's chat, with tools reading g.
func NewGuruExpert(model string, g *younginvestor.Game) *Expert {
	lib := Tools(g)
	lang := "Hebrew"
	if g.Language() == younginvestor.English {
		lang = "English"
	}
	return &Expert{
		Name:      "Guru",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(instruction, lang)}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions the guru can call on g.
func Tools(g *younginvestor.Game) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Portfolio",
				Description: "The player's cash, stocks with their gains, net worth, and story milestones.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown report of the player's portfolio.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.RenderStatus(renderer.NewStatus(g)), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Quotes",
				Description: "The prices, price changes and news of the stocks offered in a trading round.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"round": {
							Type:        genai.TypeInteger,
							Description: "The trading round, the current round when omitted.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the round's quotes followed by the news.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				round, err := intArg(args, "round", g.Round())
				if err != nil {
					return "", err
				}
				return renderer.RenderRound(renderer.NewRound(g, round)), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Lesson",
				Description: "A lesson the player attends at school, to stay consistent with what they learned.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {
							Type:        genai.TypeInteger,
							Description: fmt.Sprintf("The lesson number, one of %v.", content.Lessons()),
						},
					},
					Required: []string{"id"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The lesson in markdown.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				id, err := intArg(args, "id", 0)
				if err != nil {
					return "", err
				}
				l, err := content.LoadLesson(id, g.Language())
				if err != nil {
					return "", err
				}
				return renderer.RenderLesson(l), nil
			},
		},
	}
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %q is not a number but %T", name, v)
	}
}
