// Package persistence provides the SQLite session archive: who sat in
// the legislature, how every round went, and what was said about it.
package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/capitol-sim/internal/agents"
	"github.com/talgya/capitol-sim/internal/engine"
)

// DB wraps a SQLite connection for session archiving.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		bills_passed INTEGER NOT NULL,
		bills_failed INTEGER NOT NULL,
		deals INTEGER NOT NULL,
		betrayals INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS legislators (
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		chamber INTEGER NOT NULL,
		party TEXT NOT NULL,
		party_loyalty REAL NOT NULL,
		reelection_concern REAL NOT NULL,
		captured INTEGER NOT NULL,
		reputation REAL NOT NULL,
		voter_approval REAL NOT NULL,
		trust_json TEXT NOT NULL,
		PRIMARY KEY (session_id, name)
	);

	CREATE TABLE IF NOT EXISTS rounds (
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		bill TEXT NOT NULL,
		house_yes INTEGER NOT NULL,
		house_no INTEGER NOT NULL,
		senate_yes INTEGER NOT NULL,
		senate_no INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		house_parties_json TEXT NOT NULL,
		senate_parties_json TEXT NOT NULL,
		PRIMARY KEY (session_id, round)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSession writes the full session under the given ID: header row,
// final legislator state, every round result, and the event log. Saving
// the same ID again replaces the previous snapshot.
func (db *DB) SaveSession(sessionID string, seed int64, s *engine.Session) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"legislators", "rounds", "events"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE session_id = ?", sessionID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return err
	}

	stats := s.StatsSnapshot()
	if _, err := tx.Exec(`INSERT INTO sessions
		(id, seed, created_at, rounds, bills_passed, bills_failed, deals, betrayals)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, seed, time.Now().UTC().Format(time.RFC3339),
		stats.RoundsRun, stats.BillsPassed, stats.BillsFailed, stats.Deals, stats.Betrayals,
	); err != nil {
		return err
	}

	if err := db.saveLegislators(tx, sessionID, s.Population); err != nil {
		return err
	}
	if err := db.saveRounds(tx, sessionID, s.ResultsSnapshot()); err != nil {
		return err
	}
	if err := db.saveEvents(tx, sessionID, s.RecentEvents(1000)); err != nil {
		return err
	}

	return tx.Commit()
}

func (db *DB) saveLegislators(tx *sqlx.Tx, sessionID string, population []*agents.Legislator) error {
	stmt, err := tx.Preparex(`INSERT INTO legislators
		(session_id, name, chamber, party, party_loyalty, reelection_concern,
		 captured, reputation, voter_approval, trust_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range population {
		trustJSON, err := json.Marshal(l.Trust)
		if err != nil {
			return fmt.Errorf("marshal trust for %s: %w", l.Name, err)
		}
		captured := 0
		if l.Captured {
			captured = 1
		}
		if _, err := stmt.Exec(sessionID, l.Name, uint8(l.Chamber), string(l.Party),
			l.PartyLoyalty, l.ReelectionConcern, captured,
			l.Reputation, l.VoterApproval, string(trustJSON)); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) saveRounds(tx *sqlx.Tx, sessionID string, results []engine.RoundResult) error {
	stmt, err := tx.Preparex(`INSERT INTO rounds
		(session_id, round, bill, house_yes, house_no, senate_yes, senate_no,
		 passed, house_parties_json, senate_parties_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		houseJSON, err := json.Marshal(r.House.PartyResults)
		if err != nil {
			return err
		}
		senateJSON, err := json.Marshal(r.Senate.PartyResults)
		if err != nil {
			return err
		}
		passed := 0
		if r.Passed {
			passed = 1
		}
		if _, err := stmt.Exec(sessionID, r.Round, r.Bill.Title,
			r.House.TotalYes, r.House.TotalNo, r.Senate.TotalYes, r.Senate.TotalNo,
			passed, string(houseJSON), string(senateJSON)); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) saveEvents(tx *sqlx.Tx, sessionID string, events []engine.Event) error {
	stmt, err := tx.Preparex(`INSERT INTO events (session_id, round, description, category)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(sessionID, e.Round, e.Description, e.Category); err != nil {
			return err
		}
	}
	return nil
}

// LoadLegislators restores the archived legislator state for a session.
func (db *DB) LoadLegislators(sessionID string) ([]*agents.Legislator, error) {
	rows, err := db.conn.Queryx(`SELECT name, chamber, party, party_loyalty,
		reelection_concern, captured, reputation, voter_approval, trust_json
		FROM legislators WHERE session_id = ? ORDER BY name`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*agents.Legislator
	for rows.Next() {
		var (
			name, party, trustJSON string
			chamber                uint8
			loyalty, concern       float64
			captured               int
			reputation, approval   float64
		)
		if err := rows.Scan(&name, &chamber, &party, &loyalty, &concern,
			&captured, &reputation, &approval, &trustJSON); err != nil {
			return nil, err
		}

		l, err := agents.NewLegislator(name, agents.Chamber(chamber), agents.Party(party),
			loyalty, concern, captured != 0)
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", name, err)
		}
		l.Reputation = reputation
		l.VoterApproval = approval
		if err := json.Unmarshal([]byte(trustJSON), &l.Trust); err != nil {
			return nil, fmt.Errorf("unmarshal trust for %s: %w", name, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// RoundRecord is a flat archived round row.
type RoundRecord struct {
	Round     int    `db:"round" json:"round"`
	Bill      string `db:"bill" json:"bill"`
	HouseYes  int    `db:"house_yes" json:"house_yes"`
	HouseNo   int    `db:"house_no" json:"house_no"`
	SenateYes int    `db:"senate_yes" json:"senate_yes"`
	SenateNo  int    `db:"senate_no" json:"senate_no"`
	Passed    bool   `db:"passed" json:"passed"`
}

// LoadRounds returns the archived round results for a session in order.
func (db *DB) LoadRounds(sessionID string) ([]RoundRecord, error) {
	var out []RoundRecord
	err := db.conn.Select(&out, `SELECT round, bill, house_yes, house_no,
		senate_yes, senate_no, passed
		FROM rounds WHERE session_id = ? ORDER BY round`, sessionID)
	return out, err
}
