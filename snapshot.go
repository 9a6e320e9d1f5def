package younginvestor

import "slices"

// Snapshot is the flat, persisted state of a Game. Field names follow the
// save format of the browser game so existing saves load unchanged.
type Snapshot struct {
	PlayerName          string                 `json:"playerName"`
	Language            Language               `json:"language"`
	Cash                Money                  `json:"cash"`
	Assets              Money                  `json:"assets"`
	Destination         Money                  `json:"destination"`
	Portfolio           map[Instrument]Holding `json:"portfolio"`
	StockPrices         map[Instrument]Money   `json:"stockPrices"`
	Turn                int                    `json:"turn"`
	CurrentScene        Scene                  `json:"currentScene"`
	HasComputer         bool                   `json:"hasComputer"`
	ComputerPrice       Money                  `json:"computerPrice"`
	BankAccountOpened   bool                   `json:"bankAccountOpened"`
	BarMitzvahComplete  bool                   `json:"barMitzvahComplete"`
	GuruMeetingComplete bool                   `json:"guruMeetingComplete"`
	LessonsCompleted    []int                  `json:"lessonsCompleted"`
	MiniGamesCompleted  []string               `json:"miniGamesCompleted"`
	TradesCompleted     int                    `json:"tradesCompleted"`

	Round     int     `json:"round,omitempty"`
	FlowIndex int     `json:"flowIndex"`
	Journal   []Trade `json:"journal,omitempty"`
}

// Snapshot returns the current state. It shares nothing with the game.
func (g *Game) Snapshot() Snapshot {
	p := g.progress.clone()
	if p.LessonsCompleted == nil {
		p.LessonsCompleted = []int{}
	}
	if p.MiniGamesCompleted == nil {
		p.MiniGamesCompleted = []string{}
	}
	return Snapshot{
		PlayerName:          g.playerName,
		Language:            g.language,
		Cash:                g.Cash(),
		Assets:              g.Assets(),
		Destination:         Destination,
		Portfolio:           g.Holdings(),
		StockPrices:         g.StockPrices(),
		Turn:                p.Turn,
		CurrentScene:        g.scene,
		HasComputer:         p.HasComputer,
		ComputerPrice:       p.ComputerPrice,
		BankAccountOpened:   p.BankAccountOpened,
		BarMitzvahComplete:  p.BarMitzvahComplete,
		GuruMeetingComplete: p.GuruMeetingComplete,
		LessonsCompleted:    p.LessonsCompleted,
		MiniGamesCompleted:  p.MiniGamesCompleted,
		TradesCompleted:     p.TradesCompleted,
		Round:               g.round,
		FlowIndex:           g.flow.Index(),
		Journal:             g.Journal(),
	}
}

// Restore replaces the game state with s. Missing or invalid fields get the
// value of a new game: zero holdings, initial prices, Hebrew, round 1 and the
// Boot scene. Assets and Destination are derived and never read back.
func (g *Game) Restore(s Snapshot) {
	prices := InitialPrices()
	for i, p := range s.StockPrices {
		if i.Valid() && !p.IsNegative() {
			prices[i] = p
		}
	}

	lang := s.Language
	if _, err := ParseLanguage(string(lang)); err != nil {
		lang = Hebrew
	}
	scene := s.CurrentScene
	if _, err := ParseScene(string(scene)); err != nil {
		scene = Boot
	}
	round := s.Round
	if !g.catalog.Has(round) {
		round = FirstRound
	}

	g.playerName = s.PlayerName
	g.language = lang
	g.ledger = restoreLedger(s.Cash, s.Portfolio)
	g.prices = prices
	g.progress = Progress{
		Turn:                max(s.Turn, 0),
		TradesCompleted:     max(s.TradesCompleted, 0),
		BankAccountOpened:   s.BankAccountOpened,
		BarMitzvahComplete:  s.BarMitzvahComplete,
		GuruMeetingComplete: s.GuruMeetingComplete,
	}
	for _, id := range s.LessonsCompleted {
		g.progress.MarkLessonComplete(id)
	}
	for _, id := range s.MiniGamesCompleted {
		g.progress.MarkMiniGameComplete(id)
	}
	g.progress.SetHasComputer(s.HasComputer, s.ComputerPrice)
	g.flow = NewFlow()
	g.flow.SetIndex(s.FlowIndex)
	g.scene = scene
	g.round = round
	g.priced = 0
	if pricedAt(prices, g.catalog.Prices(round)) {
		g.priced = round
	}
	g.journal = slices.Clone(s.Journal)
	g.notify()
}

// pricedAt reports whether prices already hold every price of round.
func pricedAt(prices, round map[Instrument]Money) bool {
	for i, p := range round {
		if !prices[i].Equal(p) {
			return false
		}
	}
	return true
}

// Value returns the snapshot's net worth: cash plus holdings at its stock prices.
func (s Snapshot) Value() Money {
	total := s.Cash
	for i, h := range s.Portfolio {
		if p, ok := s.StockPrices[i]; ok {
			total = total.Add(h.Value(p))
		}
	}
	return total
}
