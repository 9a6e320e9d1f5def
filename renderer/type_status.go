package renderer

import (
	"github.com/etnz/younginvestor"
)

// Status is the view of the player's wealth.
type Status struct {
	Player      string
	Round       int
	Turn        int
	Scene       younginvestor.Scene
	Cash        younginvestor.Money
	Assets      younginvestor.Money
	NetWorth    younginvestor.Money
	Destination younginvestor.Money
	Goal        younginvestor.Percent // net worth as a share of the destination
	Reached     bool
	Holdings    []HoldingLine
	Milestones  []MilestoneLine
}

// HoldingLine is one held instrument valued at the cached price.
type HoldingLine struct {
	Name        string
	Shares      int64
	AvgCost     younginvestor.Money
	Price       younginvestor.Money
	Value       younginvestor.Money
	Gain        younginvestor.Money
	GainPercent younginvestor.Percent
}

type MilestoneLine struct {
	Name    younginvestor.Milestone
	Reached bool
}

// NewStatus builds the status view of g.
func NewStatus(g *younginvestor.Game) *Status {
	p := g.Progress()
	s := &Status{
		Player:      g.PlayerName(),
		Round:       g.Round(),
		Turn:        p.Turn,
		Scene:       g.Scene(),
		Cash:        g.Cash(),
		Assets:      g.Assets(),
		NetWorth:    g.NetWorth(),
		Destination: younginvestor.Destination,
		Reached:     g.ReachedDestination(),
	}
	s.Goal = younginvestor.Percent(s.NetWorth.Ratio(s.Destination) * 100)

	prices := g.StockPrices()
	holdings := g.Holdings()
	for _, i := range younginvestor.Instruments {
		h, ok := holdings[i]
		if !ok || h.Shares == 0 {
			continue
		}
		price := prices[i]
		s.Holdings = append(s.Holdings, HoldingLine{
			Name:        i.DisplayName(g.Language()),
			Shares:      h.Shares,
			AvgCost:     h.AvgCost,
			Price:       price,
			Value:       h.Value(price),
			Gain:        h.Gain(price),
			GainPercent: h.GainPercent(price),
		})
	}
	for _, m := range younginvestor.Milestones() {
		s.Milestones = append(s.Milestones, MilestoneLine{Name: m, Reached: p.IsMilestoneReached(m)})
	}
	return s
}
