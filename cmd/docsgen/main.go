package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/lemonade-stand/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

var (
	docPrices   = []int{0, 5, 10, 15, 20, 25, 30, 40, 50, 60, 75, 90, 100}
	docWeathers = []int{50, 60, 70, 80, 90, 99}
)

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generatePricingDoc(),
		generateRevenueDoc(),
		generateBatchCostDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Reference Tables\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generatePricingDoc() docFile {
	var b strings.Builder
	b.WriteString("# Expected Demand\n\n")
	b.WriteString("Source: `internal/game/environment.go` (`ExpectedDemand`).\n\n")
	b.WriteString("Mean cups wanted per sale, by price (cents) and weather. ")
	b.WriteString("A free cup adds the base draw again plus a bonus of up to 99 cups.\n\n")
	writeGrid(&b, func(price, weather int) string {
		return strconv.FormatFloat(expectedDemand(price, weather), 'f', 1, 64)
	})
	return docFile{Name: "pricing.md", Title: "Expected Demand", Content: b.String()}
}

func generateRevenueDoc() docFile {
	var b strings.Builder
	b.WriteString("# Expected Takings\n\n")
	b.WriteString("Mean dollars earned by a stand with enough stock to meet demand.\n\n")
	writeGrid(&b, func(price, weather int) string {
		takings := expectedDemand(price, weather) * float64(price) / 100
		return "$" + humanize.CommafWithDigits(takings, 2)
	})

	best, bestTakings := 0, 0.0
	for price := game.PriceMin; price <= game.PriceMax; price++ {
		takings := expectedDemand(price, game.WeatherMax-1) * float64(price) / 100
		if takings > bestTakings {
			best, bestTakings = price, takings
		}
	}
	b.WriteString(fmt.Sprintf("\nBest price at weather %d: **%d¢** (about $%s).\n", game.WeatherMax-1, best, humanize.CommafWithDigits(bestTakings, 2)))
	return docFile{Name: "takings.md", Title: "Expected Takings", Content: b.String()}
}

func generateBatchCostDoc() docFile {
	var b strings.Builder
	b.WriteString("# Batch Costs\n\n")
	b.WriteString("Source: `internal/game/player.go` (`Player.Produce`).\n\n")
	b.WriteString("| Cups |")
	for cost := game.UnitCostMin; cost < game.UnitCostMax; cost++ {
		b.WriteString(fmt.Sprintf(" %d¢ |", cost))
	}
	b.WriteString("\n| --- |")
	for cost := game.UnitCostMin; cost < game.UnitCostMax; cost++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for cups := game.MinCupsPerBatch; cups <= game.MaxCupsPerBatch; cups++ {
		b.WriteString(fmt.Sprintf("| %d |", cups))
		for cost := game.UnitCostMin; cost < game.UnitCostMax; cost++ {
			day := game.Day{UnitCost: cost}
			total := day.UnitCostAmount().Mul(decimal.NewFromInt(int64(cups)))
			b.WriteString(" $" + total.StringFixed(2) + " |")
		}
		b.WriteString("\n")
	}
	return docFile{Name: "batch-costs.md", Title: "Batch Costs", Content: b.String()}
}

func writeGrid(b *strings.Builder, cell func(price, weather int) string) {
	b.WriteString("| Price |")
	for _, w := range docWeathers {
		b.WriteString(fmt.Sprintf(" %d° |", w))
	}
	b.WriteString("\n| --- |")
	for range docWeathers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, p := range docPrices {
		b.WriteString(fmt.Sprintf("| %d¢ |", p))
		for _, w := range docWeathers {
			b.WriteString(" " + cell(p, w) + " |")
		}
		b.WriteString("\n")
	}
}

func expectedDemand(price, weather int) float64 {
	v, err := game.ExpectedDemand(price, weather)
	if err != nil {
		fatal(err)
	}
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
