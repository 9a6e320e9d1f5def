package younginvestor

import "fmt"

// Kind classifies why an order was rejected. Kinds are errors themselves so
// callers can branch with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

// Rejection kinds. Their values are the message keys the front-end translates.
const (
	ErrInsufficientFunds  Kind = "insufficientFunds"
	ErrInvalidQuantity    Kind = "invalidQuantity"
	ErrInsufficientShares Kind = "insufficientShares"
	ErrSellingDisabled    Kind = "sellingDisabled"
	ErrNotAvailable       Kind = "notAvailable"
	ErrInvalidPrice       Kind = "invalidPrice"
	ErrUnknownInstrument  Kind = "unknownInstrument"
	ErrAlreadyOwned       Kind = "alreadyOwned"
)

// TradeError reports a rejected order. The ledger is never modified when a
// TradeError is returned.
type TradeError struct {
	Kind       Kind
	Side       Side
	Instrument Instrument
	Quantity   int64
	Price      Money
	Cash       Money // cash balance when the order was rejected
	Shares     int64 // shares held when the order was rejected
	Round      int   // zero when the order was not placed through a round
}

func (e *TradeError) Error() string {
	switch e.Kind {
	case ErrInsufficientFunds:
		if e.Side == Withdrawal {
			return fmt.Sprintf("cannot pay %s, cash balance is %s", e.Price, e.Cash)
		}
		return fmt.Sprintf("cannot %s %d %s for %s, cash balance is %s", e.Side, e.Quantity, e.Instrument, e.Price.Mul(e.Quantity), e.Cash)
	case ErrInsufficientShares:
		return fmt.Sprintf("cannot sell %d %s, only %d held", e.Quantity, e.Instrument, e.Shares)
	case ErrInvalidQuantity:
		return fmt.Sprintf("%s quantity must be positive, got %d", e.Side, e.Quantity)
	case ErrInvalidPrice:
		return fmt.Sprintf("%s price for %s must be positive, got %s", e.Side, e.Instrument, e.Price)
	case ErrSellingDisabled:
		return fmt.Sprintf("selling is not allowed in round %d", e.Round)
	case ErrNotAvailable:
		return fmt.Sprintf("%s is not traded in round %d", e.Instrument, e.Round)
	default:
		return fmt.Sprintf("%s %s: %s", e.Side, e.Instrument, string(e.Kind))
	}
}

// Unwrap exposes the rejection kind to errors.Is.
func (e *TradeError) Unwrap() error { return e.Kind }
