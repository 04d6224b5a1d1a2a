// Package persistence provides the SQLite turn journal: an append-only record
// of events and per-turn aggregates that the API serves as history. The
// journal is observational: the simulation never restores state from it.
package persistence

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/harlandq/geosim/internal/engine"
)

// Journal wraps a SQLite connection for turn history.
type Journal struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates the journal at the given path and stamps a fresh
// run ID. Use ":memory:" for a throwaway journal.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{conn: conn, runID: uuid.NewString()}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := j.SetMeta("run_id", j.runID); err != nil {
		conn.Close()
		return nil, fmt.Errorf("stamp run id: %w", err)
	}

	return j, nil
}

// Close closes the journal connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// RunID returns the unique identifier for this run.
func (j *Journal) RunID() string {
	return j.runID
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turn_stats (
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		total_gdp REAL NOT NULL,
		trade_volume REAL NOT NULL,
		tariff_leakage REAL NOT NULL,
		blocked_pairs INTEGER NOT NULL,
		sanctions_active INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// AppendEvents writes events to the journal.
func (j *Journal) AppendEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, turn, description, category) VALUES (?, ?, ?, ?)",
			j.runID, e.Turn, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecordTurn writes one turn's aggregate stats.
func (j *Journal) RecordTurn(turn uint64, stats engine.WorldStats) error {
	_, err := j.conn.Exec(`INSERT OR REPLACE INTO turn_stats
		(run_id, turn, total_gdp, trade_volume, tariff_leakage, blocked_pairs, sanctions_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.runID, turn, stats.TotalGDP, stats.TradeVolume, stats.TariffLeakage,
		stats.BlockedPairs, stats.SanctionsActive,
	)
	if err != nil {
		return fmt.Errorf("record turn %d: %w", turn, err)
	}
	return nil
}

// SetMeta stores a key-value pair in run metadata.
func (j *Journal) SetMeta(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (j *Journal) GetMeta(key string) (string, error) {
	var value string
	err := j.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// RecentEvents returns the most recent limit events for this run, newest
// first.
func (j *Journal) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := j.conn.Select(&events,
		"SELECT turn, description, category FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		j.runID, limit,
	)
	return events, err
}

// TurnStat is one row of per-turn history.
type TurnStat struct {
	Turn            uint64  `db:"turn" json:"turn"`
	TotalGDP        float64 `db:"total_gdp" json:"total_gdp"`
	TradeVolume     float64 `db:"trade_volume" json:"trade_volume"`
	TariffLeakage   float64 `db:"tariff_leakage" json:"tariff_leakage"`
	BlockedPairs    int     `db:"blocked_pairs" json:"blocked_pairs"`
	SanctionsActive int     `db:"sanctions_active" json:"sanctions_active"`
}

// StatsHistory returns per-turn aggregates for this run in turn order.
func (j *Journal) StatsHistory() ([]TurnStat, error) {
	var stats []TurnStat
	err := j.conn.Select(&stats,
		`SELECT turn, total_gdp, trade_volume, tariff_leakage, blocked_pairs, sanctions_active
		 FROM turn_stats WHERE run_id = ? ORDER BY turn`,
		j.runID,
	)
	return stats, err
}
