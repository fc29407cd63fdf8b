// Package history keeps a per-process journal of finished rounds in an
// in-memory SQLite database. Nothing outlives the process.
package history

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/appengine-ltd/lemonade-stand/internal/game"
)

// Store records round summaries keyed by game ID.
type Store struct {
	conn   *sqlx.DB
	logger *log.Logger
}

// Open creates an empty in-memory journal. logger may be nil.
func Open(logger *log.Logger) (*Store, error) {
	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn, logger: logger}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS days (
		game_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		weather INTEGER NOT NULL,
		unit_cost INTEGER NOT NULL,
		PRIMARY KEY (game_id, day)
	);

	CREATE TABLE IF NOT EXISTS player_days (
		game_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		player_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		action TEXT NOT NULL,
		lemonade INTEGER NOT NULL,
		cups_made INTEGER NOT NULL,
		cups_demanded INTEGER NOT NULL,
		cups_sold INTEGER NOT NULL,
		cost_cents INTEGER NOT NULL,
		earnings_cents INTEGER NOT NULL,
		cash_cents INTEGER NOT NULL,
		PRIMARY KEY (game_id, day, player_id)
	);

	CREATE INDEX IF NOT EXISTS idx_player_days_game ON player_days(game_id, player_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// RecordDay stores one round. Recording the same day twice is an error.
func (s *Store) RecordDay(gameID string, summary game.RoundSummary) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO days (game_id, day, weather, unit_cost) VALUES (?, ?, ?, ?)",
		gameID, summary.Day.Number, summary.Day.Weather, summary.Day.UnitCost,
	); err != nil {
		return fmt.Errorf("insert day %d: %w", summary.Day.Number, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO player_days
		(game_id, day, player_id, name, action, lemonade, cups_made, cups_demanded,
		 cups_sold, cost_cents, earnings_cents, cash_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range summary.Players {
		_, err := stmt.Exec(
			gameID, summary.Day.Number, p.ID, p.Name, p.Action.String(), p.Lemonade,
			p.CupsMade, p.CupsDemanded, p.CupsSold,
			toCents(p.CostToMake), toCents(p.Earnings), toCents(p.Cash),
		)
		if err != nil {
			return fmt.Errorf("insert player %d day %d: %w", p.ID, summary.Day.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Debug("day recorded", "game", gameID, "day", summary.Day.Number, "players", len(summary.Players))
	}
	return nil
}

// DayRecord is the shared environment of one recorded day.
type DayRecord struct {
	Day      int `db:"day"`
	Weather  int `db:"weather"`
	UnitCost int `db:"unit_cost"`
}

func (s *Store) Days(gameID string) ([]DayRecord, error) {
	var days []DayRecord
	err := s.conn.Select(&days,
		"SELECT day, weather, unit_cost FROM days WHERE game_id = ? ORDER BY day",
		gameID,
	)
	return days, err
}

// Totals aggregates a player's recorded days.
type Totals struct {
	PlayerID    int
	Name        string
	Days        int
	DaysMade    int
	DaysSold    int
	CupsMade    int
	CupsSold    int
	CupsMissed  int
	Spent       decimal.Decimal
	Earned      decimal.Decimal
	LastCash    decimal.Decimal
	BestDay     int
	BestEarning decimal.Decimal
}

type totalsRow struct {
	PlayerID      int    `db:"player_id"`
	Name          string `db:"name"`
	Days          int    `db:"days"`
	DaysMade      int    `db:"days_made"`
	DaysSold      int    `db:"days_sold"`
	CupsMade      int    `db:"cups_made"`
	CupsSold      int    `db:"cups_sold"`
	CupsMissed    int    `db:"cups_missed"`
	CostCents     int64  `db:"cost_cents"`
	EarningsCents int64  `db:"earnings_cents"`
	LastCashCents int64  `db:"last_cash_cents"`
	BestDay       int    `db:"best_day"`
	BestCents     int64  `db:"best_cents"`
}

// Totals returns one row per player in seat order. CupsMissed counts demand the
// player could not serve from stock on days they sold.
func (s *Store) Totals(gameID string) ([]Totals, error) {
	var rows []totalsRow
	err := s.conn.Select(&rows, `
		SELECT
			pd.player_id,
			pd.name,
			COUNT(*) AS days,
			SUM(CASE WHEN pd.action = 'make' THEN 1 ELSE 0 END) AS days_made,
			SUM(CASE WHEN pd.action = 'sell' THEN 1 ELSE 0 END) AS days_sold,
			SUM(pd.cups_made) AS cups_made,
			SUM(pd.cups_sold) AS cups_sold,
			SUM(CASE WHEN pd.action = 'sell' THEN pd.cups_demanded - pd.cups_sold ELSE 0 END) AS cups_missed,
			SUM(pd.cost_cents) AS cost_cents,
			SUM(pd.earnings_cents) AS earnings_cents,
			(SELECT l.cash_cents FROM player_days l
				WHERE l.game_id = pd.game_id AND l.player_id = pd.player_id
				ORDER BY l.day DESC LIMIT 1) AS last_cash_cents,
			(SELECT b.day FROM player_days b
				WHERE b.game_id = pd.game_id AND b.player_id = pd.player_id
				ORDER BY b.earnings_cents DESC, b.day ASC LIMIT 1) AS best_day,
			MAX(pd.earnings_cents) AS best_cents
		FROM player_days pd
		WHERE pd.game_id = ?
		GROUP BY pd.player_id, pd.name
		ORDER BY pd.player_id`,
		gameID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]Totals, 0, len(rows))
	for _, r := range rows {
		out = append(out, Totals{
			PlayerID:    r.PlayerID,
			Name:        r.Name,
			Days:        r.Days,
			DaysMade:    r.DaysMade,
			DaysSold:    r.DaysSold,
			CupsMade:    r.CupsMade,
			CupsSold:    r.CupsSold,
			CupsMissed:  r.CupsMissed,
			Spent:       fromCents(r.CostCents),
			Earned:      fromCents(r.EarningsCents),
			LastCash:    fromCents(r.LastCashCents),
			BestDay:     r.BestDay,
			BestEarning: fromCents(r.BestCents),
		})
	}
	return out, nil
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
