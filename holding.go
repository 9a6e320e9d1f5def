package younginvestor

// Holding is the position held in a single instrument.
//
// AvgCost is the volume-weighted average purchase price. It is only
// meaningful while Shares is positive and is reset to zero otherwise.
type Holding struct {
	Shares  int64 `json:"shares"`
	AvgCost Money `json:"avgPrice"`
}

// Value returns the market value of the holding at price.
func (h Holding) Value(price Money) Money { return price.Mul(h.Shares) }

// Cost returns the amount paid for the shares still held.
func (h Holding) Cost() Money { return h.AvgCost.Mul(h.Shares) }

// Gain returns the unrealized gain of the holding at price.
func (h Holding) Gain(price Money) Money { return h.Value(price).Sub(h.Cost()) }

// GainPercent returns the unrealized gain as a percentage of the cost.
func (h Holding) GainPercent(price Money) Percent {
	return PercentOf(h.Gain(price), h.Cost())
}

// bought returns the holding after buying quantity shares at price.
func (h Holding) bought(quantity int64, price Money) Holding {
	total := h.Shares + quantity
	cost := h.Cost().Add(price.Mul(quantity))
	return Holding{Shares: total, AvgCost: cost.Div(total)}
}

// sold returns the holding after selling quantity shares.
func (h Holding) sold(quantity int64) Holding {
	remaining := h.Shares - quantity
	if remaining == 0 {
		return Holding{}
	}
	return Holding{Shares: remaining, AvgCost: h.AvgCost}
}
