package younginvestor

// Side is the direction of a cash movement recorded by the game.
type Side string

const (
	Buy        Side = "buy"
	Sell       Side = "sell"
	Withdrawal Side = "withdraw"
)

// Trade is a journal entry for an executed order.
type Trade struct {
	ID         string     `json:"id"`
	Turn       int        `json:"turn"`
	Round      int        `json:"round"`
	Side       Side       `json:"side"`
	Instrument Instrument `json:"instrument"`
	Quantity   int64      `json:"quantity"`
	Price      Money      `json:"price"`
}

// Amount returns the cash exchanged by the trade.
func (t Trade) Amount() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON writes the trade with a stable field order.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("turn", t.Turn)
	w.Append("round", t.Round)
	w.Append("side", t.Side)
	w.Append("instrument", t.Instrument)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	return w.MarshalJSON()
}
