package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MinPlayers = 1
	MaxPlayers = 3
)

type GameConfig struct {
	Seed         int64
	StartingCash decimal.Decimal
	RunLength    RunLength

	// Source overrides the seeded random source when set.
	Source RandomSource
}

// RunLength bounds a game. Open-ended games run until players quit.
type RunLength struct {
	OpenEnded bool
	Days      int
}

func (r RunLength) IsValid() bool {
	return r.OpenEnded || r.Days > 0
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		StartingCash: DefaultStartingCash,
		RunLength:    RunLength{OpenEnded: true},
	}
}

func (c GameConfig) Validate() error {
	if c.StartingCash.IsNegative() {
		return fmt.Errorf("%w: starting cash must not be negative, got %s", ErrInvalidConfig, c.StartingCash.StringFixed(2))
	}
	if !c.RunLength.IsValid() {
		return fmt.Errorf("%w: run length needs open_ended or days > 0, got %+v", ErrInvalidConfig, c.RunLength)
	}
	return nil
}
