package renderer

import (
	"github.com/etnz/younginvestor"
)

// Round is the view of a trading round as the player sees it.
type Round struct {
	Round   int
	CanSell bool
	Cash    younginvestor.Money
	Quotes  []younginvestor.Quote
}

// NewRound builds the view of round for g. Only offered instruments are listed.
func NewRound(g *younginvestor.Game, round int) *Round {
	def := g.Catalog().DefinitionFor(round)
	r := &Round{
		Round:   def.Round,
		CanSell: def.CanSell,
		Cash:    g.Cash(),
	}
	for _, i := range def.Available {
		r.Quotes = append(r.Quotes, g.QuoteAt(round, i))
	}
	return r
}

// Journal is the view of the executed trades.
type Journal struct {
	Trades []younginvestor.Trade
}

func NewJournal(g *younginvestor.Game) *Journal {
	return &Journal{Trades: g.Journal()}
}

// Flow is the view of the guided flow around its current step.
type Flow struct {
	Progress younginvestor.Percent
	Steps    []FlowLine
}

type FlowLine struct {
	Index   int
	Step    younginvestor.Step
	Current bool
	Locked  bool
}

// NewFlow builds the view of the guided flow of g.
func NewFlow(g *younginvestor.Game) *Flow {
	_, current := g.Flow()
	p := g.Progress()
	f := &Flow{Progress: g.FlowProgress()}
	for k, step := range younginvestor.LinearFlow {
		f.Steps = append(f.Steps, FlowLine{
			Index:   k,
			Step:    step,
			Current: k == current,
			Locked:  step.Requires != "" && !p.IsMilestoneReached(step.Requires),
		})
	}
	return f
}
