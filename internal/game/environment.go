package game

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Ranges are inclusive-low, exclusive-high unless noted.
const (
	WeatherMin  = 50
	WeatherMax  = 100
	UnitCostMin = 1
	UnitCostMax = 10

	// Asking prices are whole cents in [PriceMin, PriceMax], both inclusive.
	PriceMin = 0
	PriceMax = 100

	baseCupsMin  = 1
	baseCupsMax  = 101
	freeBonusMin = 1
	freeBonusMax = 100
)

// Day is the shared environment for one round. UnitCost is in cents per cup.
type Day struct {
	Number   int `json:"number"`
	Weather  int `json:"weather"`
	UnitCost int `json:"unit_cost"`
}

// UnitCostAmount returns the per-cup ingredient cost in currency units.
func (d Day) UnitCostAmount() decimal.Decimal {
	return cents(d.UnitCost)
}

// Demander computes how many cups buyers want at a price on a given day's weather.
type Demander interface {
	Demand(price, weather int) (int, error)
}

// Environment owns the day counter and the random source for one game.
type Environment struct {
	source RandomSource
	day    Day
}

func NewEnvironment(source RandomSource) *Environment {
	return &Environment{source: source}
}

// Current returns the latest day, or the zero Day before the first NewDay.
func (e *Environment) Current() Day {
	return e.day
}

func (e *Environment) NewDay() (Day, error) {
	weather, err := e.source.IntRange(WeatherMin, WeatherMax)
	if err != nil {
		return Day{}, fmt.Errorf("draw weather: %w", err)
	}
	unitCost, err := e.source.IntRange(UnitCostMin, UnitCostMax)
	if err != nil {
		return Day{}, fmt.Errorf("draw unit cost: %w", err)
	}

	e.day = Day{
		Number:   e.day.Number + 1,
		Weather:  weather,
		UnitCost: unitCost,
	}
	return e.day, nil
}

// Demand draws a cup count and scales it by price and heat. Free lemonade adds a
// second surge term on top of the regular formula.
func (e *Environment) Demand(price, weather int) (int, error) {
	if err := validatePrice(price); err != nil {
		return 0, err
	}
	if err := validateWeather(weather); err != nil {
		return 0, err
	}

	cups, err := e.source.IntRange(baseCupsMin, baseCupsMax)
	if err != nil {
		return 0, fmt.Errorf("draw base cups: %w", err)
	}

	demand := 0
	if price == 0 {
		bonus, err := e.source.IntRange(freeBonusMin, freeBonusMax)
		if err != nil {
			return 0, fmt.Errorf("draw free bonus: %w", err)
		}
		demand += cups + bonus
	}
	demand += int(math.RoundToEven(float64(cups) * priceFactor(price) * heatFactor(weather)))

	return max(demand, 0), nil
}

// ExpectedDemand is Demand with every random draw replaced by its mean. It
// rejects the same inputs Demand does.
func ExpectedDemand(price, weather int) (float64, error) {
	if err := validatePrice(price); err != nil {
		return 0, err
	}
	if err := validateWeather(weather); err != nil {
		return 0, err
	}

	meanCups := float64(baseCupsMin+baseCupsMax-1) / 2
	expected := meanCups * priceFactor(price) * heatFactor(weather)
	if price == 0 {
		expected += meanCups + float64(freeBonusMin+freeBonusMax-1)/2
	}
	return math.Max(expected, 0), nil
}

func priceFactor(price int) float64 {
	return float64(100-price) / 100
}

// heatFactor is 1 at weather 100 and falls by 0.02 per degree below it.
func heatFactor(weather int) float64 {
	return 1 - (float64((100-weather)*2) / 100)
}

func validatePrice(price int) error {
	if price < PriceMin || price > PriceMax {
		return fmt.Errorf("%w: %d cents not in [%d,%d]", ErrInvalidPrice, price, PriceMin, PriceMax)
	}
	return nil
}

func validateWeather(weather int) error {
	if weather < WeatherMin || weather >= WeatherMax {
		return fmt.Errorf("%w: %d not in [%d,%d)", ErrInvalidWeather, weather, WeatherMin, WeatherMax)
	}
	return nil
}

func cents(n int) decimal.Decimal {
	return decimal.New(int64(n), -2)
}
