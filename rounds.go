package younginvestor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/stat"
)

//go:embed data/rounds.json
var defaultRounds []byte

// FirstRound is the round every unknown round number falls back to.
const FirstRound = 1

// RoundDefinition is the pre-authored content of one trading round.
type RoundDefinition struct {
	Round     int                    `json:"round"`
	Available []Instrument           `json:"available"`
	CanSell   bool                   `json:"canSell"`
	Prices    map[Instrument][]Money `json:"prices"` // time series, the last point is the current price
	News      map[Instrument]Text    `json:"news"`
	Growth    map[Instrument]Money   `json:"growth,omitempty"` // prices revealed once the round's waiting period ends
}

// Offers reports whether i can be traded in this round.
func (d RoundDefinition) Offers(i Instrument) bool { return slices.Contains(d.Available, i) }

// CurrentPrice returns the last price of i's series, zero if there is none.
func (d RoundDefinition) CurrentPrice(i Instrument) Money {
	series := d.Prices[i]
	if len(series) == 0 {
		return Money{}
	}
	return series[len(series)-1]
}

// PriceChange is the move between the last two points of a price series.
type PriceChange struct {
	Absolute Money   `json:"absolute"`
	Percent  Percent `json:"percent"`
}

// PriceChange returns the move of i between the two last points of its
// series. It is zero when the series has fewer than two points.
func (d RoundDefinition) PriceChange(i Instrument) PriceChange {
	series := d.Prices[i]
	if len(series) < 2 {
		return PriceChange{}
	}
	current, previous := series[len(series)-1], series[len(series)-2]
	absolute := current.Sub(previous)
	return PriceChange{Absolute: absolute, Percent: PercentOf(absolute, previous)}
}

// clone returns a deep copy so callers cannot alter the catalog.
func (d RoundDefinition) clone() RoundDefinition {
	d.Available = slices.Clone(d.Available)
	prices := make(map[Instrument][]Money, len(d.Prices))
	for i, series := range d.Prices {
		prices[i] = slices.Clone(series)
	}
	d.Prices = prices
	d.News = maps.Clone(d.News)
	d.Growth = maps.Clone(d.Growth)
	return d
}

func (d RoundDefinition) validate() error {
	if d.Round <= 0 {
		return fmt.Errorf("round number must be positive, got %d", d.Round)
	}
	for _, i := range d.Available {
		if !i.Valid() {
			return fmt.Errorf("round %d: %w: %q", d.Round, ErrUnknownInstrument, i)
		}
	}
	for i, series := range d.Prices {
		if !i.Valid() {
			return fmt.Errorf("round %d: %w: %q", d.Round, ErrUnknownInstrument, i)
		}
		for _, p := range series {
			if p.IsNegative() {
				return fmt.Errorf("round %d: negative price %s for %s", d.Round, p, i)
			}
		}
	}
	for i, p := range d.Growth {
		if !i.Valid() {
			return fmt.Errorf("round %d: %w: %q", d.Round, ErrUnknownInstrument, i)
		}
		if p.IsNegative() {
			return fmt.Errorf("round %d: negative growth price %s for %s", d.Round, p, i)
		}
	}
	return nil
}

// Catalog is the read-only set of round definitions, looked up by round number.
type Catalog struct {
	rounds map[int]RoundDefinition
}

// NewCatalog creates a catalog from definitions. Round 1 is mandatory since
// it is the fallback for unknown rounds.
func NewCatalog(defs ...RoundDefinition) (*Catalog, error) {
	c := &Catalog{rounds: make(map[int]RoundDefinition, len(defs))}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.rounds[d.Round]; exists {
			return nil, fmt.Errorf("round %d defined twice", d.Round)
		}
		c.rounds[d.Round] = d.clone()
	}
	if _, ok := c.rounds[FirstRound]; !ok {
		return nil, fmt.Errorf("round %d is not defined", FirstRound)
	}
	return c, nil
}

// DecodeCatalog reads a JSON array of round definitions.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var defs []RoundDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("invalid round definitions: %w", err)
	}
	return NewCatalog(defs...)
}

// DefaultCatalog returns the rounds shipped with the game.
func DefaultCatalog() (*Catalog, error) {
	return DecodeCatalog(defaultRounds)
}

// Rounds returns the defined round numbers in increasing order.
func (c *Catalog) Rounds() []int {
	return slices.Sorted(maps.Keys(c.rounds))
}

// Has reports whether round is authored, as opposed to served by the fallback.
func (c *Catalog) Has(round int) bool {
	_, ok := c.rounds[round]
	return ok
}

// DefinitionFor returns the definition of round. Unknown rounds get the
// definition of round 1.
func (c *Catalog) DefinitionFor(round int) RoundDefinition {
	d, ok := c.rounds[round]
	if !ok {
		d = c.rounds[FirstRound]
	}
	return d.clone()
}

// CurrentPrice returns the current price of i in round, zero if i has no series.
func (c *Catalog) CurrentPrice(round int, i Instrument) Money {
	return c.lookup(round).CurrentPrice(i)
}

// PriceChange returns the last move of i in round.
func (c *Catalog) PriceChange(round int, i Instrument) PriceChange {
	return c.lookup(round).PriceChange(i)
}

// MaxAffordableShares returns how many shares of i cash can buy at the
// round's current price. It is zero when the price is zero.
func (c *Catalog) MaxAffordableShares(round int, i Instrument, cash Money) int64 {
	return cash.Units(c.CurrentPrice(round, i))
}

// History returns a copy of i's price series in round.
func (c *Catalog) History(round int, i Instrument) []Money {
	return slices.Clone(c.lookup(round).Prices[i])
}

// News returns the round's headline for i in lang, empty if there is none.
func (c *Catalog) News(round int, i Instrument, lang Language) string {
	t, ok := c.lookup(round).News[i]
	if !ok {
		return ""
	}
	return t.In(lang)
}

// Prices returns the current price of every instrument available in round.
func (c *Catalog) Prices(round int) map[Instrument]Money {
	d := c.lookup(round)
	prices := make(map[Instrument]Money, len(d.Available))
	for _, i := range d.Available {
		prices[i] = d.CurrentPrice(i)
	}
	return prices
}

// Growth returns the prices revealed at the end of round's waiting period.
// Rounds without a waiting period, authored or not, return nil.
func (c *Catalog) Growth(round int) map[Instrument]Money {
	d, ok := c.rounds[round]
	if !ok {
		return nil
	}
	return maps.Clone(d.Growth)
}

// Volatility returns the standard deviation of i's step returns in round.
// Series with fewer than three points have no measurable volatility.
func (c *Catalog) Volatility(round int, i Instrument) float64 {
	series := c.lookup(round).Prices[i]
	if len(series) < 3 {
		return 0
	}
	returns := make([]float64, 0, len(series)-1)
	for k := 1; k < len(series); k++ {
		if series[k-1].IsZero() {
			continue
		}
		returns = append(returns, series[k].Sub(series[k-1]).Ratio(series[k-1]))
	}
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil)
}

// MostVolatile returns the available instrument with the highest volatility in round.
func (c *Catalog) MostVolatile(round int) (Instrument, float64) {
	var best Instrument
	var top float64
	for _, i := range c.lookup(round).Available {
		if v := c.Volatility(round, i); v > top {
			best, top = i, v
		}
	}
	return best, top
}

// lookup returns the stored definition without copying it.
func (c *Catalog) lookup(round int) RoundDefinition {
	if d, ok := c.rounds[round]; ok {
		return d
	}
	return c.rounds[FirstRound]
}
