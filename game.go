package younginvestor

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Story amounts.
var (
	Destination    = M(10000) // net worth the player is aiming for
	BankGift       = M(1000)  // paid once when the bank account is opened
	BarMitzvahGift = M(5000)  // paid once at the bar mitzvah
)

// InitialPrices returns the stock prices a new game starts with.
func InitialPrices() map[Instrument]Money {
	return map[Instrument]Money{
		Solar:  M(100),
		Koogle: M(50),
		Sesla:  M(75),
		Lemon:  M(200),
	}
}

// Game is one player's session: a ledger, its progress through the story,
// the cached stock prices and the journal of executed trades.
//
// Game is not safe for concurrent use.
type Game struct {
	catalog  *Catalog
	ledger   *Ledger
	progress Progress
	flow     *Flow
	prices   map[Instrument]Money
	priced   int // round whose prices are cached, 0 for none
	journal  []Trade

	playerName string
	language   Language
	scene      Scene
	round      int

	newID       func() string
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// Option configures a Game.
type Option func(*Game)

// WithCash sets the cash a new game starts with. A reset game starts with
// no cash.
func WithCash(cash Money) Option {
	return func(g *Game) { g.ledger = NewLedger(cash) }
}

// WithLanguage sets the initial language.
func WithLanguage(lang Language) Option {
	return func(g *Game) { g.language = lang }
}

// WithPlayerName sets the player's name.
func WithPlayerName(name string) Option {
	return func(g *Game) { g.playerName = name }
}

// WithIDs replaces the generator of journal entry ids.
func WithIDs(newID func() string) Option {
	return func(g *Game) { g.newID = newID }
}

// NewGame creates a session trading over catalog.
func NewGame(catalog *Catalog, opts ...Option) *Game {
	g := &Game{
		catalog:     catalog,
		language:    Hebrew,
		newID:       uuid.NewString,
		subscribers: make(map[int]func(Snapshot)),
	}
	g.init()
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// init sets every field Reset resets.
func (g *Game) init() {
	g.ledger = NewLedger(Money{})
	g.progress.Reset()
	g.flow = NewFlow()
	g.prices = InitialPrices()
	g.priced = 0
	g.journal = nil
	g.scene = Boot
	g.round = FirstRound
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes the subscription.
func (g *Game) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	id := g.nextSub
	g.nextSub++
	g.subscribers[id] = fn
	return func() { delete(g.subscribers, id) }
}

func (g *Game) notify() {
	if len(g.subscribers) == 0 {
		return
	}
	s := g.Snapshot()
	for _, k := range slices.Sorted(maps.Keys(g.subscribers)) {
		g.subscribers[k](s)
	}
}

// Catalog returns the rounds the game trades over.
func (g *Game) Catalog() *Catalog { return g.catalog }

func (g *Game) PlayerName() string { return g.playerName }
func (g *Game) Language() Language { return g.language }
func (g *Game) Scene() Scene       { return g.scene }

// Round returns the trading round the game is in.
func (g *Game) Round() int { return g.round }

// Progress returns a copy of the player's progress.
func (g *Game) Progress() Progress { return g.progress.clone() }

// Cash returns the cash balance.
func (g *Game) Cash() Money { return g.ledger.Cash() }

// Holding returns the position in i.
func (g *Game) Holding(i Instrument) Holding { return g.ledger.Holding(i) }

// Holdings returns every position, keyed by instrument.
func (g *Game) Holdings() map[Instrument]Holding {
	h := make(map[Instrument]Holding, len(Instruments))
	for i, v := range g.ledger.Holdings() {
		h[i] = v
	}
	return h
}

// StockPrices returns the cached prices the portfolio is valued at.
func (g *Game) StockPrices() map[Instrument]Money { return maps.Clone(g.prices) }

// Assets returns the value of all holdings at the cached prices.
func (g *Game) Assets() Money { return g.ledger.TotalValue(g.prices) }

// NetWorth returns cash plus assets.
func (g *Game) NetWorth() Money { return g.ledger.NetWorth(g.prices) }

// ReachedDestination reports whether the net worth reached Destination.
func (g *Game) ReachedDestination() bool { return g.NetWorth().GreaterThanOrEqual(Destination) }

// Journal returns the executed trades, oldest first.
func (g *Game) Journal() []Trade { return slices.Clone(g.journal) }

// Quote is what the player sees of an instrument before placing an order.
type Quote struct {
	Instrument Instrument  `json:"instrument"`
	Name       string      `json:"name"`
	Price      Money       `json:"price"`
	Change     PriceChange `json:"change"`
	History    []Money     `json:"history"`
	News       string      `json:"news,omitempty"`
	MaxShares  int64       `json:"maxShares"`
	Holding    Holding     `json:"holding"`
	Available  bool        `json:"available"`
	CanSell    bool        `json:"canSell"`
}

// Quote returns the current round's view of i.
func (g *Game) Quote(i Instrument) Quote { return g.QuoteAt(g.round, i) }

// QuoteAt returns the view of i in round, priced against the player's cash.
func (g *Game) QuoteAt(round int, i Instrument) Quote {
	d := g.catalog.lookup(round)
	return Quote{
		Instrument: i,
		Name:       i.DisplayName(g.language),
		Price:      d.CurrentPrice(i),
		Change:     d.PriceChange(i),
		History:    g.catalog.History(round, i),
		News:       g.catalog.News(round, i, g.language),
		MaxShares:  g.catalog.MaxAffordableShares(round, i, g.Cash()),
		Holding:    g.ledger.Holding(i),
		Available:  d.Offers(i),
		CanSell:    d.CanSell,
	}
}

// Buy buys quantity shares of i at the current round's price.
func (g *Game) Buy(i Instrument, quantity int64) (Trade, error) {
	return g.trade(Buy, i, quantity)
}

// Sell sells quantity shares of i at the current round's price. It fails
// with ErrSellingDisabled in rounds that do not allow selling.
func (g *Game) Sell(i Instrument, quantity int64) (Trade, error) {
	return g.trade(Sell, i, quantity)
}

func (g *Game) trade(side Side, i Instrument, quantity int64) (Trade, error) {
	d := g.catalog.lookup(g.round)
	reject := func(kind Kind) error {
		return &TradeError{Kind: kind, Side: side, Instrument: i, Quantity: quantity, Round: g.round}
	}
	switch {
	case !i.Valid():
		return Trade{}, reject(ErrUnknownInstrument)
	case !d.Offers(i):
		return Trade{}, reject(ErrNotAvailable)
	case side == Sell && !d.CanSell:
		return Trade{}, reject(ErrSellingDisabled)
	}

	price := d.CurrentPrice(i)
	var err error
	if side == Buy {
		err = g.ledger.Buy(i, quantity, price)
	} else {
		err = g.ledger.Sell(i, quantity, price)
	}
	if err != nil {
		var te *TradeError
		if errors.As(err, &te) {
			te.Round = g.round
		}
		return Trade{}, err
	}
	g.openRound()

	t := Trade{
		ID:         g.newID(),
		Turn:       g.progress.Turn,
		Round:      g.round,
		Side:       side,
		Instrument: i,
		Quantity:   quantity,
		Price:      price,
	}
	g.journal = append(g.journal, t)
	g.notify()
	return t, nil
}

// CompleteTradeRound closes the current trading round: its prices become the
// cached prices, the round counts as completed and the game moves to the next
// authored round, if any.
func (g *Game) CompleteTradeRound() {
	g.openRound()
	g.progress.MarkTradeRoundComplete()
	if g.catalog.Has(g.round + 1) {
		g.round++
	}
	g.notify()
}

// EndWaitingPeriod reveals the growth prices of the last completed round and
// advances the turn.
func (g *Game) EndWaitingPeriod() {
	maps.Copy(g.prices, g.catalog.Growth(g.progress.TradesCompleted))
	g.progress.AdvanceTurn()
	g.notify()
}

// OpenBankAccount opens the account and pays BankGift. It reports false and
// does nothing when the account is already open.
func (g *Game) OpenBankAccount() bool {
	if g.progress.BankAccountOpened {
		return false
	}
	g.progress.OpenBankAccount()
	g.ledger.Deposit(BankGift)
	g.notify()
	return true
}

// CompleteBarMitzvah pays BarMitzvahGift once. It reports false when the
// bar mitzvah already took place.
func (g *Game) CompleteBarMitzvah() bool {
	if g.progress.BarMitzvahComplete {
		return false
	}
	g.progress.CompleteBarMitzvah()
	g.ledger.Deposit(BarMitzvahGift)
	g.notify()
	return true
}

// BuyComputer pays price for a computer. It fails with ErrAlreadyOwned when
// the player has one and ErrInsufficientFunds when the cash is short.
func (g *Game) BuyComputer(price Money) error {
	if g.progress.HasComputer {
		return ErrAlreadyOwned
	}
	if !price.IsPositive() {
		return &TradeError{Kind: ErrInvalidPrice, Side: Withdrawal, Quantity: 1, Price: price}
	}
	if err := g.ledger.Withdraw(price); err != nil {
		return err
	}
	g.progress.SetHasComputer(true, price)
	g.notify()
	return nil
}

func (g *Game) CompleteLesson(id int) {
	g.progress.MarkLessonComplete(id)
	g.notify()
}

func (g *Game) CompleteMiniGame(id string) {
	g.progress.MarkMiniGameComplete(id)
	g.notify()
}

func (g *Game) CompleteGuruMeeting() {
	g.progress.CompleteGuruMeeting()
	g.notify()
}

func (g *Game) AdvanceTurn() {
	g.progress.AdvanceTurn()
	g.notify()
}

func (g *Game) SetPlayerName(name string) {
	g.playerName = name
	g.notify()
}

func (g *Game) SetLanguage(lang Language) {
	g.language = lang
	g.notify()
}

// SetScene records the scene the player is in, outside of the guided flow.
func (g *Game) SetScene(scene Scene) {
	g.scene = scene
	g.notify()
}

// Flow returns the current step of the guided flow and its position.
func (g *Game) Flow() (Step, int) { return g.flow.Current(), g.flow.Index() }

// FlowProgress returns how far the player is through the guided flow.
func (g *Game) FlowProgress() Percent { return g.flow.Progress() }

// NextStep enters the next step of the guided flow. It returns nil at the end
// of the flow and an error wrapping ErrLocked when the step's milestone is
// not reached.
func (g *Game) NextStep() (*Step, error) {
	step, err := g.flow.Next(&g.progress)
	if err != nil || step == nil {
		return step, err
	}
	g.enter(*step)
	return step, nil
}

// PreviousStep goes back one step of the guided flow, nil at the start.
func (g *Game) PreviousStep() *Step {
	step := g.flow.Previous()
	if step == nil {
		return nil
	}
	g.enter(*step)
	return step
}

// GoToStep jumps to the step at index, clamped to the flow. Milestones are not
// checked.
func (g *Game) GoToStep(index int) Step {
	g.flow.SetIndex(index)
	step := g.flow.Current()
	g.enter(step)
	return step
}

// enter moves the player into step. Entering a trading floor selects its round.
func (g *Game) enter(step Step) {
	g.scene = step.Scene
	if step.Scene == TradeFloor && step.Params.Kind == RoundParam {
		g.round = step.Params.N
		g.openRound()
	}
	g.notify()
}

// openRound caches the current round's prices, once per round.
func (g *Game) openRound() {
	if g.priced == g.round {
		return
	}
	maps.Copy(g.prices, g.catalog.Prices(g.round))
	g.priced = g.round
}

// Reset starts the game over. The language is kept.
func (g *Game) Reset() {
	g.playerName = ""
	g.init()
	g.notify()
}
