package younginvestor

import (
	"errors"
	"slices"
	"testing"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := defaultCatalog(t)
	if got, want := c.Rounds(), []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Fatalf("Rounds() = %v, want %v", got, want)
	}

	tests := []struct {
		round     int
		available []Instrument
		canSell   bool
	}{
		{1, []Instrument{Solar, Koogle}, false},
		{2, []Instrument{Solar, Koogle, Sesla}, true},
		{3, []Instrument{Solar, Koogle, Sesla, Lemon}, true},
	}
	for _, tt := range tests {
		d := c.DefinitionFor(tt.round)
		if !slices.Equal(d.Available, tt.available) {
			t.Errorf("round %d Available = %v, want %v", tt.round, d.Available, tt.available)
		}
		if d.CanSell != tt.canSell {
			t.Errorf("round %d CanSell = %v, want %v", tt.round, d.CanSell, tt.canSell)
		}
		for _, i := range d.Available {
			if c.News(tt.round, i, English) == "" || c.News(tt.round, i, Hebrew) == "" {
				t.Errorf("round %d has no news for %s", tt.round, i)
			}
		}
	}
}

func TestCatalog_Fallback(t *testing.T) {
	c := defaultCatalog(t)
	for _, round := range []int{0, -1, 4, 99} {
		got := c.DefinitionFor(round)
		if got.Round != 1 {
			t.Errorf("DefinitionFor(%d).Round = %d, want 1", round, got.Round)
		}
		if p := c.CurrentPrice(round, Solar); !p.Equal(M(130)) {
			t.Errorf("CurrentPrice(%d, solar) = %s, want 130", round, p)
		}
	}
}

func TestCatalog_Prices(t *testing.T) {
	c := defaultCatalog(t)

	tests := []struct {
		name   string
		round  int
		i      Instrument
		price  Money
		change PriceChange
	}{
		{"round 1 solar", 1, Solar, M(130), PriceChange{Absolute: M(2), Percent: 1.5625}},
		{"round 1 koogle", 1, Koogle, M(63), PriceChange{Absolute: M(-2), Percent: -3.0769}},
		{"round 1 lemon has no series", 1, Lemon, M(0), PriceChange{}},
		{"round 2 sesla", 2, Sesla, M(92), PriceChange{Absolute: M(-3), Percent: -3.1579}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CurrentPrice(tt.round, tt.i); !got.Equal(tt.price) {
				t.Errorf("CurrentPrice() = %s, want %s", got, tt.price)
			}
			got := c.PriceChange(tt.round, tt.i)
			if !got.Absolute.Equal(tt.change.Absolute) || !got.Percent.Equal(tt.change.Percent) {
				t.Errorf("PriceChange() = {%s, %v}, want {%s, %v}", got.Absolute, float64(got.Percent), tt.change.Absolute, float64(tt.change.Percent))
			}
		})
	}
}

func TestCatalog_MaxAffordableShares(t *testing.T) {
	c := defaultCatalog(t)
	tests := []struct {
		round int
		i     Instrument
		cash  Money
		want  int64
	}{
		{1, Solar, M(1000), 7},   // 1000/130
		{1, Koogle, M(1000), 15}, // 1000/63
		{1, Lemon, M(1000), 0},   // no price in round 1
		{3, Lemon, M(0), 0},
	}
	for _, tt := range tests {
		if got := c.MaxAffordableShares(tt.round, tt.i, tt.cash); got != tt.want {
			t.Errorf("MaxAffordableShares(%d, %s, %s) = %d, want %d", tt.round, tt.i, tt.cash, got, tt.want)
		}
	}
}

func TestCatalog_DefinitionIsACopy(t *testing.T) {
	c := defaultCatalog(t)
	d := c.DefinitionFor(1)
	d.Prices[Solar][len(d.Prices[Solar])-1] = M(1)
	d.Available[0] = Lemon
	if got := c.CurrentPrice(1, Solar); !got.Equal(M(130)) {
		t.Errorf("catalog price changed through a definition: %s", got)
	}
	if !c.DefinitionFor(1).Offers(Solar) {
		t.Error("catalog availability changed through a definition")
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		defs []RoundDefinition
	}{
		{"no round 1", []RoundDefinition{{Round: 2}}},
		{"duplicate", []RoundDefinition{{Round: 1}, {Round: 1}}},
		{"zero round", []RoundDefinition{{Round: 0}}},
		{"unknown instrument", []RoundDefinition{{Round: 1, Available: []Instrument{"tesla"}}}},
		{"negative price", []RoundDefinition{{Round: 1, Prices: map[Instrument][]Money{Solar: {M(-1)}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.defs...); err == nil {
				t.Error("NewCatalog() error = nil, want an error")
			}
		})
	}
	_, err := NewCatalog(RoundDefinition{Round: 1, Available: []Instrument{"tesla"}})
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Errorf("error = %v, want %v", err, ErrUnknownInstrument)
	}
}

func TestCatalog_Volatility(t *testing.T) {
	c, err := NewCatalog(
		RoundDefinition{Round: 1, Available: []Instrument{Solar, Koogle, Sesla}, Prices: map[Instrument][]Money{
			Solar:  {M(100), M(110), M(121)}, // +10%, +10%
			Koogle: {M(100), M(110), M(99)},  // +10%, -10%
			Sesla:  {M(100), M(50)},
		}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Volatility(1, Solar); got > 1e-9 {
		t.Errorf("Volatility(solar) = %v, want 0", got)
	}
	if got := c.Volatility(1, Sesla); got != 0 {
		t.Errorf("Volatility(sesla) = %v, want 0 for two points", got)
	}
	// sample standard deviation of {0.1, -0.1}
	if got, want := c.Volatility(1, Koogle), 0.1414213562; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("Volatility(koogle) = %v, want %v", got, want)
	}
	if i, _ := c.MostVolatile(1); i != Koogle {
		t.Errorf("MostVolatile() = %s, want koogle", i)
	}
}

func TestCatalog_Growth(t *testing.T) {
	c := defaultCatalog(t)
	g := c.Growth(1)
	if !g[Solar].Equal(M(130)) || !g[Koogle].Equal(M(63)) {
		t.Errorf("Growth(1) = %v", g)
	}
	if g := c.Growth(3); len(g) != 0 {
		t.Errorf("Growth(3) = %v, want none", g)
	}
	if g := c.Growth(7); g != nil {
		t.Errorf("Growth(7) = %v, want nil", g)
	}
}
