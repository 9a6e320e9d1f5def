package younginvestor

import (
	"iter"
	"math"
)

// Ledger holds the player's cash and one Holding per instrument.
//
// The set of holdings is fixed: every instrument is always present, holding
// zero shares until bought. Every rejected operation leaves the ledger
// unchanged.
type Ledger struct {
	cash     Money
	holdings map[Instrument]Holding
}

// NewLedger creates a ledger with the given cash and no shares.
func NewLedger(cash Money) *Ledger {
	l := &Ledger{cash: cash, holdings: make(map[Instrument]Holding, len(Instruments))}
	for _, i := range Instruments {
		l.holdings[i] = Holding{}
	}
	return l
}

// restoreLedger rebuilds a ledger from persisted values. Unknown instruments
// are ignored and negative values are clamped to zero.
func restoreLedger(cash Money, holdings map[Instrument]Holding) *Ledger {
	if cash.IsNegative() {
		cash = Money{}
	}
	l := NewLedger(cash)
	for _, i := range Instruments {
		h, ok := holdings[i]
		if !ok || h.Shares <= 0 {
			continue
		}
		if h.AvgCost.IsNegative() {
			h.AvgCost = Money{}
		}
		l.holdings[i] = h
	}
	return l
}

// Cash returns the cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// Holding returns the holding for i, zero for an unknown instrument.
func (l *Ledger) Holding(i Instrument) Holding { return l.holdings[i] }

// Holdings iterates over all holdings in display order.
func (l *Ledger) Holdings() iter.Seq2[Instrument, Holding] {
	return func(yield func(Instrument, Holding) bool) {
		for _, i := range Instruments {
			if !yield(i, l.holdings[i]) {
				return
			}
		}
	}
}

// Buy buys quantity shares of i at price, debiting the cash balance.
//
// The average cost of the holding becomes
// (shares*avgCost + quantity*price) / (shares+quantity).
// Orders costing more than the cash balance are rejected, never partially filled.
func (l *Ledger) Buy(i Instrument, quantity int64, price Money) error {
	if err := l.check(Buy, i, quantity, price); err != nil {
		return err
	}
	if quantity > math.MaxInt64-l.holdings[i].Shares {
		return &TradeError{Kind: ErrInvalidQuantity, Side: Buy, Instrument: i, Quantity: quantity, Price: price}
	}
	cost := price.Mul(quantity)
	if cost.GreaterThan(l.cash) {
		return &TradeError{Kind: ErrInsufficientFunds, Side: Buy, Instrument: i, Quantity: quantity, Price: price, Cash: l.cash}
	}

	l.cash = l.cash.Sub(cost)
	l.holdings[i] = l.holdings[i].bought(quantity, price)
	return nil
}

// Sell sells quantity shares of i at price, crediting the cash balance.
//
// The average cost is unchanged, except that it is reset to zero when no
// shares remain.
func (l *Ledger) Sell(i Instrument, quantity int64, price Money) error {
	if err := l.check(Sell, i, quantity, price); err != nil {
		return err
	}
	h := l.holdings[i]
	if quantity > h.Shares {
		return &TradeError{Kind: ErrInsufficientShares, Side: Sell, Instrument: i, Quantity: quantity, Price: price, Shares: h.Shares}
	}

	l.cash = l.cash.Add(price.Mul(quantity))
	l.holdings[i] = h.sold(quantity)
	return nil
}

// check validates the order fields that do not depend on the balance.
func (l *Ledger) check(side Side, i Instrument, quantity int64, price Money) error {
	if !i.Valid() {
		return &TradeError{Kind: ErrUnknownInstrument, Side: side, Instrument: i, Quantity: quantity, Price: price}
	}
	if quantity <= 0 {
		return &TradeError{Kind: ErrInvalidQuantity, Side: side, Instrument: i, Quantity: quantity, Price: price}
	}
	if !price.IsPositive() {
		return &TradeError{Kind: ErrInvalidPrice, Side: side, Instrument: i, Quantity: quantity, Price: price}
	}
	return nil
}

// Deposit credits amount to the cash balance. Non-positive amounts are ignored.
func (l *Ledger) Deposit(amount Money) {
	if amount.IsPositive() {
		l.cash = l.cash.Add(amount)
	}
}

// Withdraw debits amount from the cash balance. It fails with
// ErrInsufficientFunds if the balance is too small.
func (l *Ledger) Withdraw(amount Money) error {
	if amount.GreaterThan(l.cash) {
		return &TradeError{Kind: ErrInsufficientFunds, Side: Withdrawal, Quantity: 1, Price: amount, Cash: l.cash}
	}
	if amount.IsPositive() {
		l.cash = l.cash.Sub(amount)
	}
	return nil
}

// TotalValue returns the market value of all holdings at prices. Instruments
// missing from prices contribute nothing.
func (l *Ledger) TotalValue(prices map[Instrument]Money) Money {
	var total Money
	for i, h := range l.Holdings() {
		price, ok := prices[i]
		if !ok {
			continue
		}
		total = total.Add(h.Value(price))
	}
	return total
}

// NetWorth returns the cash balance plus the value of all holdings at prices.
func (l *Ledger) NetWorth(prices map[Instrument]Money) Money {
	return l.cash.Add(l.TotalValue(prices))
}
