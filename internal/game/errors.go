package game

import "errors"

var (
	ErrInvalidRange       = errors.New("invalid random range")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidWeather     = errors.New("invalid weather")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrInvalidName        = errors.New("invalid player name")
	ErrInvalidAction      = errors.New("invalid action")
	ErrWrongPhase         = errors.New("action not allowed in current phase")
	ErrInvalidConfig      = errors.New("invalid config")
)

// IsValidationError reports whether err rejects caller input, as opposed to a
// programmer or source failure. Callers re-prompt on these.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrInvalidPlayerCount) ||
		errors.Is(err, ErrInvalidName)
}
