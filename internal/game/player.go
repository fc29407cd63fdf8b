package game

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinCupsPerBatch = 1
	MaxCupsPerBatch = 10
)

var DefaultStartingCash = decimal.NewFromInt(100)

var romanNumerals = []string{
	"", "II", "III", "IV", "V", "VI", "VII", "VIII",
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionProduce
	ActionSell
)

func (k ActionKind) String() string {
	switch k {
	case ActionProduce:
		return "make"
	case ActionSell:
		return "sell"
	default:
		return "none"
	}
}

// Action is one player's choice for the day. Quantity applies to produce, Price
// (cents) to sell.
type Action struct {
	Kind     ActionKind
	Quantity int
	Price    int
}

func Produce(quantity int) Action {
	return Action{Kind: ActionProduce, Quantity: quantity}
}

func Sell(price int) Action {
	return Action{Kind: ActionSell, Price: price}
}

// Player is one stand's ledger. Cash and Lemonade carry across days; the
// remaining fields describe the current day only and are cleared by ResetDay.
type Player struct {
	ID       int
	Name     string
	Cash     decimal.Decimal
	Lemonade int

	CupsMade     int
	CupsSold     int
	CupsDemanded int
	Earnings     decimal.Decimal
	CostToMake   decimal.Decimal
	Action       ActionKind
}

func NewPlayer(id int, name string, cash decimal.Decimal) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, fmt.Errorf("%w: player %d has an empty name", ErrInvalidName, id)
	}
	return Player{
		ID:         id,
		Name:       name,
		Cash:       cash,
		Earnings:   decimal.Zero,
		CostToMake: decimal.Zero,
	}, nil
}

// CreatePlayers builds ledgers in the given order, suffixing repeated names.
func CreatePlayers(names []string, cash decimal.Decimal) ([]Player, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidPlayerCount, MinPlayers, MaxPlayers, len(names))
	}

	players := make([]Player, 0, len(names))
	used := make(map[string]int)
	for i, raw := range names {
		p, err := NewPlayer(i+1, raw, cash)
		if err != nil {
			return nil, err
		}
		count := used[p.Name]
		used[p.Name]++
		if count > 0 {
			p.Name = fmt.Sprintf("%s %s", p.Name, romanSuffix(count))
		}
		players = append(players, p)
	}
	return players, nil
}

func (p *Player) ResetDay() {
	p.CupsMade = 0
	p.CupsSold = 0
	p.CupsDemanded = 0
	p.Earnings = decimal.Zero
	p.CostToMake = decimal.Zero
	p.Action = ActionNone
}

// Produce makes quantity cups at the day's unit cost.
func (p *Player) Produce(quantity int, day Day) error {
	if quantity < MinCupsPerBatch || quantity > MaxCupsPerBatch {
		return fmt.Errorf("%w: %d cups not in [%d,%d]", ErrInvalidQuantity, quantity, MinCupsPerBatch, MaxCupsPerBatch)
	}

	cost := day.UnitCostAmount().Mul(decimal.NewFromInt(int64(quantity)))

	p.Lemonade += quantity
	p.CupsMade = quantity
	p.CostToMake = cost
	p.Cash = p.Cash.Sub(cost)
	p.Action = ActionProduce
	return nil
}

// Sell offers the stand's lemonade at price cents per cup. Sales are capped by
// both demand and the cups on hand.
func (p *Player) Sell(price int, day Day, market Demander) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	demanded, err := market.Demand(price, day.Weather)
	if err != nil {
		return fmt.Errorf("demand for %s: %w", p.Name, err)
	}

	sold := min(demanded, p.Lemonade)
	earnings := cents(price).Mul(decimal.NewFromInt(int64(sold)))

	p.CupsDemanded = demanded
	p.CupsSold = sold
	p.Lemonade -= sold
	p.Earnings = earnings
	p.Cash = p.Cash.Add(earnings)
	p.Action = ActionSell
	return nil
}

// Apply dispatches an action to Produce or Sell.
func (p *Player) Apply(action Action, day Day, market Demander) error {
	switch action.Kind {
	case ActionProduce:
		return p.Produce(action.Quantity, day)
	case ActionSell:
		return p.Sell(action.Price, day, market)
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidAction, action.Kind)
	}
}

func romanSuffix(n int) string {
	if n > 0 && n < len(romanNumerals) {
		return romanNumerals[n]
	}
	return fmt.Sprintf("%d", n+1)
}
