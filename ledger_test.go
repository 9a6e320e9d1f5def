package younginvestor

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestLedger_Scenario(t *testing.T) {
	l := NewLedger(M(1000))

	if err := l.Buy(Solar, 5, M(100)); err != nil {
		t.Fatalf("Buy(5@100) error = %v", err)
	}
	assertCash(t, l, M(500))
	assertHolding(t, l, Solar, Holding{Shares: 5, AvgCost: M(100)})

	// 5@120 costs 600 which is more than the 500 left.
	err := l.Buy(Solar, 5, M(120))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Buy(5@120) error = %v, want %v", err, ErrInsufficientFunds)
	}
	assertCash(t, l, M(500))
	assertHolding(t, l, Solar, Holding{Shares: 5, AvgCost: M(100)})

	if err := l.Buy(Solar, 3, M(120)); err != nil {
		t.Fatalf("Buy(3@120) error = %v", err)
	}
	assertCash(t, l, M(140))
	assertHolding(t, l, Solar, Holding{Shares: 8, AvgCost: M(107.5)})

	if err := l.Sell(Solar, 8, M(150)); err != nil {
		t.Fatalf("Sell(8@150) error = %v", err)
	}
	assertCash(t, l, M(1340))
	assertHolding(t, l, Solar, Holding{})
}

func TestLedger_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		order func(*Ledger) error
		want  Kind
	}{
		{"buy zero", func(l *Ledger) error { return l.Buy(Solar, 0, M(100)) }, ErrInvalidQuantity},
		{"buy negative", func(l *Ledger) error { return l.Buy(Solar, -2, M(100)) }, ErrInvalidQuantity},
		{"buy zero before funds", func(l *Ledger) error { return l.Buy(Lemon, 0, M(1e6)) }, ErrInvalidQuantity},
		{"buy too much", func(l *Ledger) error { return l.Buy(Lemon, 6, M(200)) }, ErrInsufficientFunds},
		{"buy free", func(l *Ledger) error { return l.Buy(Solar, 1, M(0)) }, ErrInvalidPrice},
		{"buy unknown", func(l *Ledger) error { return l.Buy("tesla", 1, M(10)) }, ErrUnknownInstrument},
		{"buy past the share limit", func(l *Ledger) error { return l.Buy(Koogle, math.MaxInt64, M(1e-30)) }, ErrInvalidQuantity},
		{"sell zero", func(l *Ledger) error { return l.Sell(Koogle, 0, M(50)) }, ErrInvalidQuantity},
		{"sell more than held", func(l *Ledger) error { return l.Sell(Koogle, 11, M(50)) }, ErrInsufficientShares},
		{"sell not held", func(l *Ledger) error { return l.Sell(Sesla, 1, M(75)) }, ErrInsufficientShares},
		{"sell negative price", func(l *Ledger) error { return l.Sell(Koogle, 1, M(-1)) }, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(M(1000))
			if err := l.Buy(Koogle, 10, M(50)); err != nil {
				t.Fatalf("setup Buy error = %v", err)
			}
			before := snapshotOf(l)

			err := tt.order(l)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var te *TradeError
			if !errors.As(err, &te) {
				t.Fatalf("error %T is not a *TradeError", err)
			}
			if te.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", te.Kind, tt.want)
			}
			if got := snapshotOf(l); !sameLedger(got, before) {
				t.Errorf("ledger changed on rejection: got %v, want %v", got, before)
			}
		})
	}
}

func TestLedger_DepositWithdraw(t *testing.T) {
	l := NewLedger(M(0))
	l.Deposit(BankGift)
	l.Deposit(M(-5))
	assertCash(t, l, M(1000))

	if err := l.Withdraw(M(1500)); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Withdraw(1500) error = %v, want %v", err, ErrInsufficientFunds)
	}
	assertCash(t, l, M(1000))

	if err := l.Withdraw(M(400)); err != nil {
		t.Fatalf("Withdraw(400) error = %v", err)
	}
	assertCash(t, l, M(600))
}

func TestLedger_NetWorth(t *testing.T) {
	l := NewLedger(M(1000))
	if err := l.Buy(Solar, 2, M(100)); err != nil {
		t.Fatal(err)
	}
	if err := l.Buy(Koogle, 4, M(50)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		prices map[Instrument]Money
		want   Money
	}{
		{"all prices", map[Instrument]Money{Solar: M(110), Koogle: M(40), Sesla: M(1), Lemon: M(1)}, M(600 + 220 + 160)},
		{"missing koogle", map[Instrument]Money{Solar: M(110)}, M(600 + 220)},
		{"no prices", nil, M(600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.NetWorth(tt.prices); !got.Equal(tt.want) {
				t.Errorf("NetWorth() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLedger_HoldingsOrder(t *testing.T) {
	l := NewLedger(M(0))
	var got []Instrument
	for i := range l.Holdings() {
		got = append(got, i)
	}
	if len(got) != len(Instruments) {
		t.Fatalf("Holdings() yielded %d instruments, want %d", len(got), len(Instruments))
	}
	for k := range got {
		if got[k] != Instruments[k] {
			t.Errorf("Holdings()[%d] = %s, want %s", k, got[k], Instruments[k])
		}
	}
}

func TestLedger_BuyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cash := M(rapid.Int64Range(0, 100000).Draw(t, "cash"))
		l := NewLedger(cash)
		held := rapid.Int64Range(0, 50).Draw(t, "held")
		if held > 0 {
			l.holdings[Sesla] = Holding{Shares: held, AvgCost: M(rapid.Int64Range(1, 500).Draw(t, "avg"))}
		}
		before := l.Holding(Sesla)
		qty := rapid.Int64Range(-5, 200).Draw(t, "qty")
		price := M(rapid.Int64Range(1, 1000).Draw(t, "price"))

		err := l.Buy(Sesla, qty, price)
		cost := price.Mul(qty)
		switch {
		case qty <= 0:
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("Buy(%d) error = %v, want %v", qty, err, ErrInvalidQuantity)
			}
		case cost.GreaterThan(cash):
			if !errors.Is(err, ErrInsufficientFunds) {
				t.Fatalf("Buy(%d@%s) error = %v, want %v", qty, price, err, ErrInsufficientFunds)
			}
		default:
			if err != nil {
				t.Fatalf("Buy(%d@%s) error = %v", qty, price, err)
			}
			after := l.Holding(Sesla)
			if !l.Cash().Equal(cash.Sub(cost)) {
				t.Fatalf("cash = %s, want %s", l.Cash(), cash.Sub(cost))
			}
			if after.Shares != before.Shares+qty {
				t.Fatalf("shares = %d, want %d", after.Shares, before.Shares+qty)
			}
			wantAvg := before.Cost().Add(cost).Div(after.Shares)
			if !after.AvgCost.Equal(wantAvg) {
				t.Fatalf("avg = %s, want %s", after.AvgCost.Decimal(), wantAvg.Decimal())
			}
			return
		}
		if !l.Cash().Equal(cash) || l.Holding(Sesla) != before {
			t.Fatalf("rejected buy changed the ledger")
		}
	})
}

func TestLedger_SellProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cash := M(rapid.Int64Range(0, 100000).Draw(t, "cash"))
		l := NewLedger(cash)
		held := rapid.Int64Range(0, 50).Draw(t, "held")
		avg := M(rapid.Int64Range(1, 500).Draw(t, "avg"))
		if held > 0 {
			l.holdings[Lemon] = Holding{Shares: held, AvgCost: avg}
		}
		before := l.Holding(Lemon)
		qty := rapid.Int64Range(1, 60).Draw(t, "qty")
		price := M(rapid.Int64Range(1, 1000).Draw(t, "price"))

		err := l.Sell(Lemon, qty, price)
		if qty > held {
			if !errors.Is(err, ErrInsufficientShares) {
				t.Fatalf("Sell(%d of %d) error = %v, want %v", qty, held, err, ErrInsufficientShares)
			}
			if !l.Cash().Equal(cash) || l.Holding(Lemon) != before {
				t.Fatalf("rejected sell changed the ledger")
			}
			return
		}
		if err != nil {
			t.Fatalf("Sell(%d of %d) error = %v", qty, held, err)
		}
		after := l.Holding(Lemon)
		if want := cash.Add(price.Mul(qty)); !l.Cash().Equal(want) {
			t.Fatalf("cash = %s, want %s", l.Cash(), want)
		}
		if after.Shares != held-qty {
			t.Fatalf("shares = %d, want %d", after.Shares, held-qty)
		}
		switch {
		case after.Shares == 0 && !after.AvgCost.IsZero():
			t.Fatalf("avg = %s after selling everything, want 0", after.AvgCost)
		case after.Shares > 0 && !after.AvgCost.Equal(avg):
			t.Fatalf("avg = %s, want unchanged %s", after.AvgCost, avg)
		}
	})
}

func TestLedger_NetWorthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedger(M(rapid.Int64Range(0, 100000).Draw(t, "cash")))
		prices := make(map[Instrument]Money)
		want := l.Cash()
		for _, i := range Instruments {
			shares := rapid.Int64Range(0, 100).Draw(t, "shares_"+string(i))
			if shares > 0 {
				l.holdings[i] = Holding{Shares: shares, AvgCost: M(1)}
			}
			if rapid.Bool().Draw(t, "priced_"+string(i)) {
				p := M(rapid.Int64Range(0, 1000).Draw(t, "price_"+string(i)))
				prices[i] = p
				want = want.Add(p.Mul(shares))
			}
		}
		if got := l.NetWorth(prices); !got.Equal(want) {
			t.Fatalf("NetWorth() = %s, want %s", got, want)
		}
	})
}

type ledgerState struct {
	cash     Money
	holdings map[Instrument]Holding
}

func snapshotOf(l *Ledger) ledgerState {
	s := ledgerState{cash: l.Cash(), holdings: make(map[Instrument]Holding)}
	for i, h := range l.Holdings() {
		s.holdings[i] = h
	}
	return s
}

func sameLedger(a, b ledgerState) bool {
	if !a.cash.Equal(b.cash) || len(a.holdings) != len(b.holdings) {
		return false
	}
	for i, h := range a.holdings {
		if h.Shares != b.holdings[i].Shares || !h.AvgCost.Equal(b.holdings[i].AvgCost) {
			return false
		}
	}
	return true
}

func assertCash(t *testing.T, l *Ledger, want Money) {
	t.Helper()
	if got := l.Cash(); !got.Equal(want) {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
}

func assertHolding(t *testing.T, l *Ledger, i Instrument, want Holding) {
	t.Helper()
	got := l.Holding(i)
	if got.Shares != want.Shares || !got.AvgCost.Equal(want.AvgCost) {
		t.Errorf("Holding(%s) = {%d, %s}, want {%d, %s}", i, got.Shares, got.AvgCost.Decimal(), want.Shares, want.AvgCost.Decimal())
	}
}
