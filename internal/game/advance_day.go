package game

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ActionChooser supplies each player's decision for the day. Implementations
// own any prompting and must return actions that pass validation, or an error
// to abort the day.
type ActionChooser interface {
	ChooseAction(p Player, day Day) (Action, error)
}

// ActionChooserFunc adapts a function to ActionChooser.
type ActionChooserFunc func(p Player, day Day) (Action, error)

func (f ActionChooserFunc) ChooseAction(p Player, day Day) (Action, error) {
	return f(p, day)
}

// RunDay asks the chooser for every remaining turn of the current day. On error
// the day stays in progress at the failing player's turn and can be resumed.
func (g *Game) RunDay(chooser ActionChooser) (RoundSummary, error) {
	for {
		p, ok := g.CurrentPlayer()
		if !ok {
			break
		}
		action, err := chooser.ChooseAction(p, g.day)
		if err != nil {
			return RoundSummary{}, err
		}
		if _, err := g.Act(action); err != nil {
			return RoundSummary{}, err
		}
	}
	return g.Summary()
}

type PlayerSummary struct {
	ID           int
	Name         string
	Action       ActionKind
	Lemonade     int
	CupsMade     int
	CupsDemanded int
	CupsSold     int
	CostToMake   decimal.Decimal
	Earnings     decimal.Decimal
	Cash         decimal.Decimal
}

type RoundSummary struct {
	Day     Day
	Players []PlayerSummary
	// Final is set when the run length has been reached and no further day will start.
	Final bool
}

func (g *Game) Summary() (RoundSummary, error) {
	if g.Phase != PhaseRoundSummary && g.Phase != PhaseTerminated {
		return RoundSummary{}, fmt.Errorf("%w: in %s, need %s", ErrWrongPhase, g.Phase, PhaseRoundSummary)
	}

	players := make([]PlayerSummary, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, PlayerSummary{
			ID:           p.ID,
			Name:         p.Name,
			Action:       p.Action,
			Lemonade:     p.Lemonade,
			CupsMade:     p.CupsMade,
			CupsDemanded: p.CupsDemanded,
			CupsSold:     p.CupsSold,
			CostToMake:   p.CostToMake,
			Earnings:     p.Earnings,
			Cash:         p.Cash,
		})
	}

	return RoundSummary{
		Day:     g.day,
		Players: players,
		Final:   g.runLengthReached(),
	}, nil
}

type ContinueDecision struct {
	Quit      bool
	Confirmed bool
}

// Continue ends the round. A confirmed quit, or reaching a fixed run length,
// terminates the game; anything else starts the next day.
func (g *Game) Continue(decision ContinueDecision) error {
	if err := g.expectPhase(PhaseRoundSummary); err != nil {
		return err
	}

	if (decision.Quit && decision.Confirmed) || g.runLengthReached() {
		g.Phase = PhaseTerminated
		return nil
	}

	_, err := g.beginDay()
	return err
}

func (g *Game) runLengthReached() bool {
	rl := g.Config.RunLength
	return !rl.OpenEnded && rl.Days > 0 && g.day.Number >= rl.Days
}

type Standing struct {
	Rank int
	Name string
	Cash decimal.Decimal
}

// Standings ranks players by cash, richest first. Equal cash shares a rank.
func (g *Game) Standings() []Standing {
	players := append([]Player(nil), g.Players...)
	sort.SliceStable(players, func(i, j int) bool {
		if c := players[i].Cash.Cmp(players[j].Cash); c != 0 {
			return c > 0
		}
		return players[i].Name < players[j].Name
	})

	out := make([]Standing, 0, len(players))
	for i, p := range players {
		rank := i + 1
		if i > 0 && p.Cash.Equal(players[i-1].Cash) {
			rank = out[i-1].Rank
		}
		out = append(out, Standing{Rank: rank, Name: p.Name, Cash: p.Cash})
	}
	return out
}
