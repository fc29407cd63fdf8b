package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/lemonade-stand/internal/game"
	"github.com/appengine-ltd/lemonade-stand/internal/parser"
)

// Lemon and leaf palette. Colours drop out when out is not a terminal.
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	name   lipgloss.Style
	money  lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	prompt lipgloss.Style
	border lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		name:   r.NewStyle().Foreground(lipgloss.Color("10")),
		money:  r.NewStyle().Foreground(lipgloss.Color("2")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("9")),
		prompt: r.NewStyle().Foreground(lipgloss.Color("11")),
		border: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (a *App) renderBanner() {
	a.println(a.styles.title.Render("LEMONADE STAND"))
	if a.cfg.Version != "" {
		a.println(a.styles.dim.Render(fmt.Sprintf("v%s  (%s)  %s", a.cfg.Version, a.cfg.Commit, a.cfg.BuildDate)))
	}
	a.println(a.styles.border.Render(strings.Repeat("-", 40)))
}

func (a *App) renderDay(day game.Day) {
	a.println("")
	a.println(a.styles.header.Render(fmt.Sprintf("Day %d", day.Number)))
	a.println(fmt.Sprintf("Weather: %d  Lemonade costs %s a cup to make.", day.Weather, formatMoney(day.UnitCostAmount())))
}

func (a *App) renderSummary(s game.RoundSummary) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(a.styles.border).
		Headers("Stand", "Did", "Made", "Cost", "Demand", "Sold", "Earned", "Cash", "Stock")

	for _, p := range s.Players {
		demand, sold, earned := "-", "-", "-"
		made, cost := "-", "-"
		switch p.Action {
		case game.ActionProduce:
			made = strconv.Itoa(p.CupsMade)
			cost = formatMoney(p.CostToMake)
		case game.ActionSell:
			demand = humanize.Comma(int64(p.CupsDemanded))
			sold = strconv.Itoa(p.CupsSold)
			earned = formatMoney(p.Earnings)
		}
		t.Row(p.Name, p.Action.String(), made, cost, demand, sold, earned, formatMoney(p.Cash), strconv.Itoa(p.Lemonade))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		cell := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return cell.Bold(true)
		}
		return cell
	})

	a.println("")
	a.println(a.styles.header.Render(fmt.Sprintf("Day %d results", s.Day.Number)))
	a.println(t.String())
	if s.Final {
		a.println(a.styles.dim.Render("That was the last day."))
	}
}

func (a *App) renderHelp(ctx parser.ParseContext) {
	labels := make([]string, 0, len(ctx.Choices))
	for i, c := range ctx.Choices {
		labels = append(labels, fmt.Sprintf("%d) %s", i+1, c))
	}
	a.println(a.styles.dim.Render("Choices: " + strings.Join(labels, "  ")))
	if len(ctx.Choices) > 0 && ctx.Choices[0] == "make" {
		a.println(a.styles.dim.Render("Type a number or a command, e.g. \"make 5\" or \"sell 25c\"."))
	}
}

func (a *App) renderGameOver() {
	g := a.game
	a.println("")
	a.println(a.styles.title.Render("GAME OVER"))
	for _, s := range g.Standings() {
		a.println(fmt.Sprintf("%-5s %s  %s", humanize.Ordinal(s.Rank), a.styles.name.Render(s.Name), a.styles.money.Render(formatMoney(s.Cash))))
	}
	a.renderTotals()
}

func (a *App) renderTotals() {
	if a.history == nil {
		return
	}
	totals, err := a.history.Totals(a.game.ID.String())
	if err != nil {
		a.logger.Warn("totals unavailable", "err", err)
		return
	}
	if len(totals) == 0 {
		return
	}

	a.println("")
	a.println(a.styles.header.Render("Season totals"))
	for _, t := range totals {
		line := fmt.Sprintf("%s: %s, made %s cups, sold %s, missed %s, spent %s, earned %s",
			t.Name,
			pluralDays(t.Days),
			humanize.Comma(int64(t.CupsMade)),
			humanize.Comma(int64(t.CupsSold)),
			humanize.Comma(int64(t.CupsMissed)),
			formatMoney(t.Spent),
			formatMoney(t.Earned),
		)
		if t.BestEarning.IsPositive() {
			line += fmt.Sprintf(", best day %d (%s)", t.BestDay, formatMoney(t.BestEarning))
		}
		a.println(line)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// formatMoney renders dollars with two decimals, sign before the symbol.
func formatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
