package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		project      TEXT NOT NULL,
		log_dir      TEXT NOT NULL,
		started_at   TEXT NOT NULL,
		finished_at  TEXT,
		sources      INTEGER DEFAULT 0,
		events       INTEGER DEFAULT 0,
		missions     INTEGER DEFAULT 0,
		transactions INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS events (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq    INTEGER NOT NULL,
		kind   TEXT NOT NULL,
		ts     TEXT NOT NULL,
		source TEXT NOT NULL,
		line   INTEGER NOT NULL,
		fields TEXT DEFAULT '{}',
		CONSTRAINT uq_event_seq UNIQUE (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS missions (
		run_id              TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		mission_id          INTEGER NOT NULL,
		name                TEXT DEFAULT '',
		faction             TEXT DEFAULT '',
		destination_system  TEXT DEFAULT '',
		destination_station TEXT DEFAULT '',
		PRIMARY KEY (run_id, mission_id)
	);

	CREATE TABLE IF NOT EXISTS mission_transitions (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id                  TEXT NOT NULL,
		mission_id              INTEGER NOT NULL,
		seq                     INTEGER NOT NULL,
		kind                    TEXT NOT NULL,
		ts                      TEXT NOT NULL,
		new_destination_system  TEXT DEFAULT '',
		new_destination_station TEXT DEFAULT '',
		source                  TEXT NOT NULL,
		line                    INTEGER NOT NULL,
		FOREIGN KEY (run_id, mission_id) REFERENCES missions(run_id, mission_id) ON DELETE CASCADE,
		CONSTRAINT uq_transition_key UNIQUE (run_id, mission_id, kind, ts)
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		ts           TEXT NOT NULL,
		side         TEXT NOT NULL,
		market_id    INTEGER NOT NULL,
		commodity    TEXT NOT NULL,
		count        INTEGER NOT NULL,
		amount       INTEGER NOT NULL,
		station_name TEXT DEFAULT '',
		star_system  TEXT DEFAULT '',
		source       TEXT NOT NULL,
		line         INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_kind ON events (run_id, kind);
	CREATE INDEX IF NOT EXISTS idx_events_ts ON events (ts);
	CREATE INDEX IF NOT EXISTS idx_transitions_mission ON mission_transitions (run_id, mission_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_run_market ON transactions (run_id, market_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_commodity ON transactions (commodity);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
