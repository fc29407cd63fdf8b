package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseAwaitingPlayers Phase = "awaiting_players"
	PhaseDayInProgress   Phase = "day_in_progress"
	PhaseRoundSummary    Phase = "round_summary"
	PhaseTerminated      Phase = "terminated"
)

// Game runs the daily loop for one set of stands. It owns its environment and
// random source; separate games never share state.
type Game struct {
	ID      uuid.UUID
	Config  GameConfig
	Phase   Phase
	Players []Player

	env  *Environment
	day  Day
	turn int
}

func NewGame(config GameConfig) (*Game, error) {
	resolved := config

	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	if resolved.Seed == 0 {
		resolved.Seed = time.Now().UnixNano()
	}

	source := resolved.Source
	if source == nil {
		source = NewSeededSource(resolved.Seed)
	}

	return &Game{
		ID:     uuid.New(),
		Config: resolved,
		Phase:  PhaseAwaitingPlayers,
		env:    NewEnvironment(source),
	}, nil
}

// AddPlayers seats the stands in play order. It may only be called once.
func (g *Game) AddPlayers(names []string) error {
	if err := g.expectPhase(PhaseAwaitingPlayers); err != nil {
		return err
	}
	if len(g.Players) > 0 {
		return fmt.Errorf("%w: players already seated", ErrWrongPhase)
	}

	players, err := CreatePlayers(names, g.Config.StartingCash)
	if err != nil {
		return err
	}
	g.Players = players
	return nil
}

// StartDay draws the first day once players are seated.
func (g *Game) StartDay() (Day, error) {
	if err := g.expectPhase(PhaseAwaitingPlayers); err != nil {
		return Day{}, err
	}
	if len(g.Players) == 0 {
		return Day{}, fmt.Errorf("%w: no players seated", ErrWrongPhase)
	}
	return g.beginDay()
}

func (g *Game) beginDay() (Day, error) {
	day, err := g.env.NewDay()
	if err != nil {
		return Day{}, err
	}

	for i := range g.Players {
		g.Players[i].ResetDay()
	}
	g.day = day
	g.turn = 0
	g.Phase = PhaseDayInProgress
	return day, nil
}

// Day returns the current day.
func (g *Game) Day() Day {
	return g.day
}

// CurrentPlayer returns the stand whose turn it is, if a day is in progress.
func (g *Game) CurrentPlayer() (Player, bool) {
	if g.Phase != PhaseDayInProgress || g.turn >= len(g.Players) {
		return Player{}, false
	}
	return g.Players[g.turn], true
}

// Act applies the current player's action. A rejected action changes nothing
// and leaves the turn with the same player.
func (g *Game) Act(action Action) (Player, error) {
	if err := g.expectPhase(PhaseDayInProgress); err != nil {
		return Player{}, err
	}

	p := g.Players[g.turn]
	if err := p.Apply(action, g.day, g.env); err != nil {
		return Player{}, err
	}
	g.Players[g.turn] = p

	g.turn++
	if g.turn == len(g.Players) {
		g.Phase = PhaseRoundSummary
	}
	return p, nil
}

func (g *Game) expectPhase(want Phase) error {
	if g.Phase != want {
		return fmt.Errorf("%w: in %s, need %s", ErrWrongPhase, g.Phase, want)
	}
	return nil
}
