package game

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fixedDemand struct {
	cups   int
	err    error
	called int
}

func (f *fixedDemand) Demand(price, weather int) (int, error) {
	f.called++
	return f.cups, f.err
}

func newTestPlayer(t *testing.T, lemonade int) Player {
	t.Helper()
	p, err := NewPlayer(1, "Ada", DefaultStartingCash)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.Lemonade = lemonade
	return p
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestProduceChargesUnitCost(t *testing.T) {
	p := newTestPlayer(t, 0)
	day := Day{Number: 1, Weather: 80, UnitCost: 5}

	if err := p.Produce(10, day); err != nil {
		t.Fatalf("produce: %v", err)
	}
	if p.Lemonade != 10 || p.CupsMade != 10 {
		t.Fatalf("expected 10 cups made and held, got made=%d held=%d", p.CupsMade, p.Lemonade)
	}
	if !p.CostToMake.Equal(mustDecimal(t, "0.50")) {
		t.Fatalf("expected cost 0.50, got %s", p.CostToMake)
	}
	if !p.Cash.Equal(mustDecimal(t, "99.50")) {
		t.Fatalf("expected cash 99.50, got %s", p.Cash)
	}
	if p.Action != ActionProduce {
		t.Fatalf("expected produce action, got %s", p.Action)
	}
}

func TestProduceRejectsOutOfRangeQuantity(t *testing.T) {
	for _, q := range []int{0, 11, -3} {
		p := newTestPlayer(t, 4)
		before := p
		err := p.Produce(q, Day{Number: 1, Weather: 70, UnitCost: 3})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: err=%v, want ErrInvalidQuantity", q, err)
		}
		if p.Lemonade != before.Lemonade || !p.Cash.Equal(before.Cash) || p.Action != ActionNone {
			t.Fatalf("quantity %d: ledger mutated on rejection: %+v", q, p)
		}
	}
}

func TestSellWithinInventory(t *testing.T) {
	p := newTestPlayer(t, 10)
	market := &fixedDemand{cups: 6}

	if err := p.Sell(50, Day{Number: 2, Weather: 80, UnitCost: 4}, market); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.CupsDemanded != 6 || p.CupsSold != 6 || p.Lemonade != 4 {
		t.Fatalf("unexpected sale: demanded=%d sold=%d left=%d", p.CupsDemanded, p.CupsSold, p.Lemonade)
	}
	if !p.Earnings.Equal(mustDecimal(t, "3.00")) {
		t.Fatalf("expected earnings 3.00, got %s", p.Earnings)
	}
	if !p.Cash.Equal(mustDecimal(t, "103.00")) {
		t.Fatalf("expected cash 103.00, got %s", p.Cash)
	}
}

func TestSellCappedByInventory(t *testing.T) {
	p := newTestPlayer(t, 3)

	if err := p.Sell(50, Day{Number: 1, Weather: 90, UnitCost: 2}, &fixedDemand{cups: 8}); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.CupsSold != 3 || p.Lemonade != 0 || p.CupsDemanded != 8 {
		t.Fatalf("expected sale capped at 3, got sold=%d left=%d demanded=%d", p.CupsSold, p.Lemonade, p.CupsDemanded)
	}
	if !p.Earnings.Equal(mustDecimal(t, "1.50")) {
		t.Fatalf("expected earnings 1.50, got %s", p.Earnings)
	}
}

func TestSellUsesEnvironmentDemand(t *testing.T) {
	p := newTestPlayer(t, 3)
	env := NewEnvironment(newScriptedSource(t, 20))

	if err := p.Sell(50, Day{Number: 1, Weather: 90, UnitCost: 2}, env); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.CupsDemanded != 8 || p.CupsSold != 3 {
		t.Fatalf("expected demand 8 capped to 3, got demanded=%d sold=%d", p.CupsDemanded, p.CupsSold)
	}
}

func TestSellRejectsOutOfRangePrice(t *testing.T) {
	for _, price := range []int{-1, 101} {
		p := newTestPlayer(t, 5)
		market := &fixedDemand{cups: 5}
		if err := p.Sell(price, Day{Number: 1, Weather: 60, UnitCost: 1}, market); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %d: err=%v, want ErrInvalidPrice", price, err)
		}
		if market.called != 0 {
			t.Fatalf("price %d: demand should not be drawn on rejection", price)
		}
		if p.Lemonade != 5 || !p.Cash.Equal(DefaultStartingCash) {
			t.Fatalf("price %d: ledger mutated on rejection: %+v", price, p)
		}
	}
}

func TestSellLeavesLedgerOnDemandFailure(t *testing.T) {
	p := newTestPlayer(t, 5)
	if err := p.Sell(20, Day{Number: 1, Weather: 60, UnitCost: 1}, &fixedDemand{err: errors.New("boom")}); err == nil {
		t.Fatalf("expected demand failure to surface")
	}
	if p.Lemonade != 5 || p.CupsDemanded != 0 || p.Action != ActionNone {
		t.Fatalf("ledger mutated on failure: %+v", p)
	}
}

func TestSoldNeverExceedsDemandOrStock(t *testing.T) {
	env := NewEnvironment(NewSeededSource(5))
	for stock := 0; stock <= 40; stock += 4 {
		for price := 0; price <= 100; price += 10 {
			p := newTestPlayer(t, stock)
			if err := p.Sell(price, Day{Number: 1, Weather: 85, UnitCost: 3}, env); err != nil {
				t.Fatalf("sell: %v", err)
			}
			if p.CupsSold > p.CupsDemanded || p.CupsSold > stock {
				t.Fatalf("stock=%d price=%d: sold %d exceeds demand %d or stock", stock, price, p.CupsSold, p.CupsDemanded)
			}
			if p.Lemonade < 0 {
				t.Fatalf("negative lemonade after sale: %d", p.Lemonade)
			}
		}
	}
}

func TestResetDayIsIdempotent(t *testing.T) {
	p := newTestPlayer(t, 10)
	if err := p.Sell(40, Day{Number: 1, Weather: 95, UnitCost: 1}, &fixedDemand{cups: 7}); err != nil {
		t.Fatalf("sell: %v", err)
	}

	for i := 0; i < 2; i++ {
		p.ResetDay()
		if p.CupsMade != 0 || p.CupsSold != 0 || p.CupsDemanded != 0 || !p.Earnings.IsZero() || !p.CostToMake.IsZero() || p.Action != ActionNone {
			t.Fatalf("reset %d left transient fields set: %+v", i+1, p)
		}
	}
	if p.Lemonade != 3 || !p.Cash.Equal(mustDecimal(t, "102.80")) {
		t.Fatalf("reset must keep inventory and cash, got lemonade=%d cash=%s", p.Lemonade, p.Cash)
	}
}

func TestCreatePlayersSuffixesDuplicates(t *testing.T) {
	players, err := CreatePlayers([]string{" Sam ", "Sam", "Ivy"}, DefaultStartingCash)
	if err != nil {
		t.Fatalf("create players: %v", err)
	}
	got := []string{players[0].Name, players[1].Name, players[2].Name}
	want := []string{"Sam", "Sam II", "Ivy"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names=%v want=%v", got, want)
		}
		if players[i].ID != i+1 {
			t.Fatalf("expected player %d to have id %d, got %d", i, i+1, players[i].ID)
		}
	}
}

func TestCreatePlayersValidates(t *testing.T) {
	if _, err := CreatePlayers(nil, DefaultStartingCash); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("expected ErrInvalidPlayerCount for no players, got %v", err)
	}
	if _, err := CreatePlayers([]string{"a", "b", "c", "d"}, DefaultStartingCash); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("expected ErrInvalidPlayerCount for four players, got %v", err)
	}
	if _, err := CreatePlayers([]string{"a", "   "}, DefaultStartingCash); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName for blank name, got %v", err)
	}
}
