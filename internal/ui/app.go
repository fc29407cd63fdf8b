package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/appengine-ltd/lemonade-stand/internal/game"
	"github.com/appengine-ltd/lemonade-stand/internal/history"
	"github.com/appengine-ltd/lemonade-stand/internal/parser"
)

// errInputClosed ends the game quietly when stdin runs out.
var errInputClosed = errors.New("input closed")

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Game    game.GameConfig
	In      io.Reader
	Out     io.Writer
	Logger  *log.Logger
	History *history.Store
}

// App runs one game of lemonade stand over a line-oriented console.
type App struct {
	cfg     AppConfig
	in      *bufio.Scanner
	out     io.Writer
	logger  *log.Logger
	parser  *parser.Parser
	history *history.Store
	styles  styles

	game *game.Game
}

func NewApp(cfg AppConfig) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		cfg:     cfg,
		in:      bufio.NewScanner(cfg.In),
		out:     cfg.Out,
		logger:  logger,
		parser:  parser.New(),
		history: cfg.History,
		styles:  newStyles(cfg.Out),
	}
}

func (a *App) Run() error {
	a.renderBanner()

	g, err := game.NewGame(a.cfg.Game)
	if err != nil {
		return err
	}
	a.game = g

	err = a.play()
	if errors.Is(err, errInputClosed) {
		a.logger.Info("input closed", "game", g.ID, "phase", g.Phase)
		a.println("")
		a.println(a.styles.dim.Render("Input closed."))
		err = nil
	}
	if err != nil {
		return err
	}
	if len(g.Players) > 0 {
		a.renderGameOver()
	}
	return nil
}

func (a *App) play() error {
	g := a.game

	names, err := a.askPlayers()
	if err != nil {
		return err
	}
	if err := g.AddPlayers(names); err != nil {
		return err
	}
	a.logger.Info("game started", "game", g.ID, "players", len(g.Players), "seed", g.Config.Seed)

	day, err := g.StartDay()
	if err != nil {
		return err
	}

	for {
		a.renderDay(day)
		a.logger.Debug("day started", "day", day.Number, "weather", day.Weather, "unit_cost", day.UnitCost)

		summary, err := a.runDay()
		if err != nil {
			return err
		}
		a.renderSummary(summary)
		a.record(summary)

		decision := game.ContinueDecision{}
		if !summary.Final {
			decision, err = a.askContinue()
			if err != nil {
				return err
			}
		}
		if err := g.Continue(decision); err != nil {
			return err
		}
		if g.Phase == game.PhaseTerminated {
			a.logger.Info("game over", "game", g.ID, "days", day.Number)
			return nil
		}
		day = g.Day()
	}
}

// runDay resumes the day after a rejected action so the same player is asked again.
func (a *App) runDay() (game.RoundSummary, error) {
	for {
		summary, err := a.game.RunDay(a)
		if err == nil {
			return summary, nil
		}
		if !game.IsValidationError(err) {
			return game.RoundSummary{}, err
		}
		a.warn(err.Error())
	}
}

func (a *App) record(summary game.RoundSummary) {
	if a.history == nil {
		return
	}
	if err := a.history.RecordDay(a.game.ID.String(), summary); err != nil {
		a.logger.Warn("day not recorded", "day", summary.Day.Number, "err", err)
	}
}

// ChooseAction prompts the player for today's move.
func (a *App) ChooseAction(p game.Player, day game.Day) (game.Action, error) {
	ctx := parser.ParseContext{Choices: []string{"make", "sell"}}
	for {
		line, err := a.ask(fmt.Sprintf("%s, what will you do? 1) make lemonade  2) sell lemonade", a.styles.name.Render(p.Name)))
		if err != nil {
			return game.Action{}, err
		}

		intent := a.parser.Parse(ctx, line)
		if intent.Clarify != nil {
			a.clarify(intent.Clarify)
			continue
		}

		var action game.Action
		switch {
		case intent.Kind == parser.Help:
			a.renderHelp(ctx)
			continue
		case intent.Verb == "make":
			action, err = a.chooseProduce(intent.Quantity)
		case intent.Verb == "sell":
			action, err = a.choosePrice(intent.Quantity)
		default:
			a.warn("Choose 1 to make lemonade or 2 to sell.")
			continue
		}
		if err != nil {
			return game.Action{}, err
		}
		a.logger.Debug("player acted", "player", p.Name, "day", day.Number, "action", parser.IntentToCommandString(intent))
		return action, nil
	}
}

func (a *App) chooseProduce(inline *parser.Quantity) (game.Action, error) {
	if inline != nil {
		if inline.Unit == "count" && inRange(inline.N, game.MinCupsPerBatch, game.MaxCupsPerBatch) {
			return game.Produce(inline.N), nil
		}
		a.warn(quantityHint())
	}
	n, err := a.askNumber("How many cups? (1-10)", game.MinCupsPerBatch, game.MaxCupsPerBatch, quantityHint())
	if err != nil {
		return game.Action{}, err
	}
	return game.Produce(n), nil
}

func (a *App) choosePrice(inline *parser.Quantity) (game.Action, error) {
	if inline != nil {
		if inRange(inline.N, game.PriceMin, game.PriceMax) {
			return game.Sell(inline.N), nil
		}
		a.warn(priceHint())
	}
	n, err := a.askNumber("Price per cup in cents? (0-100)", game.PriceMin, game.PriceMax, priceHint())
	if err != nil {
		return game.Action{}, err
	}
	return game.Sell(n), nil
}

func (a *App) askPlayers() ([]string, error) {
	count, err := a.askNumber(
		fmt.Sprintf("How many players? (%d-%d)", game.MinPlayers, game.MaxPlayers),
		game.MinPlayers, game.MaxPlayers,
		fmt.Sprintf("Enter a number from %d to %d.", game.MinPlayers, game.MaxPlayers),
	)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		for {
			line, err := a.ask(fmt.Sprintf("Name for player %d?", i))
			if err != nil {
				return nil, err
			}
			name := strings.TrimSpace(line)
			if name == "" {
				a.warn("A name is required.")
				continue
			}
			names = append(names, name)
			break
		}
	}
	return names, nil
}

func (a *App) askContinue() (game.ContinueDecision, error) {
	ctx := parser.ParseContext{Choices: []string{"continue", "quit"}}
	for {
		line, err := a.ask("1) continue  2) quit")
		if err != nil {
			return game.ContinueDecision{}, err
		}
		intent := a.parser.Parse(ctx, line)
		if intent.Clarify != nil {
			a.clarify(intent.Clarify)
			continue
		}
		switch {
		case intent.Kind == parser.Help:
			a.renderHelp(ctx)
		case intent.Verb == "continue":
			return game.ContinueDecision{}, nil
		case intent.Verb == "quit":
			ok, err := a.confirm("Are you sure you want to quit? (y/n)")
			if err != nil {
				return game.ContinueDecision{}, err
			}
			return game.ContinueDecision{Quit: true, Confirmed: ok}, nil
		default:
			a.warn("Choose 1 to continue or 2 to quit.")
		}
	}
}

func (a *App) confirm(prompt string) (bool, error) {
	ctx := parser.ParseContext{Choices: []string{"yes", "no"}}
	for {
		line, err := a.ask(prompt)
		if err != nil {
			return false, err
		}
		intent := a.parser.Parse(ctx, line)
		if intent.Clarify == nil {
			switch intent.Verb {
			case "yes":
				return true, nil
			case "no":
				return false, nil
			}
		}
		a.warn("Answer y or n.")
	}
}

// askNumber re-prompts until the reply is a whole number within [low, high].
func (a *App) askNumber(prompt string, low, high int, hint string) (int, error) {
	for {
		line, err := a.ask(prompt)
		if err != nil {
			return 0, err
		}
		q, ok := parser.ParseAmount(line)
		if ok && inRange(q.N, low, high) {
			return q.N, nil
		}
		a.warn(hint)
	}
}

func (a *App) ask(prompt string) (string, error) {
	fmt.Fprintf(a.out, "%s\n%s", prompt, a.styles.prompt.Render("> "))
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return a.in.Text(), nil
}

func (a *App) clarify(q *parser.ClarifyQuestion) {
	line := q.Prompt
	if strings.HasSuffix(line, ":") && len(q.Options) > 0 {
		opts := make([]string, 0, len(q.Options))
		for i, o := range q.Options {
			opts = append(opts, fmt.Sprintf("%d) %s", i+1, o.Verb))
		}
		line += " " + strings.Join(opts, "  ")
	}
	a.warn(line)
}

func (a *App) warn(msg string) {
	a.println(a.styles.warn.Render(msg))
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func inRange(n, low, high int) bool {
	return n >= low && n <= high
}

func quantityHint() string {
	return fmt.Sprintf("Make between %d and %d cups.", game.MinCupsPerBatch, game.MaxCupsPerBatch)
}

func priceHint() string {
	return fmt.Sprintf("Price must be %d to %d cents.", game.PriceMin, game.PriceMax)
}
