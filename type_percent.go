package younginvestor

import "fmt"

// Percent is a percentage, 12.5 meaning 12.5%.
type Percent float64

// PercentOf returns the change from previous to current as a percentage of previous.
func PercentOf(change, previous Money) Percent {
	return Percent(change.Ratio(previous) * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

// SignedString always shows the sign, the way price moves are displayed to the player.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.1f%%", p)
}
