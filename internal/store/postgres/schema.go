package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// A multi-statement Exec runs in one implicit transaction.
	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    project      TEXT NOT NULL,
    log_dir      TEXT NOT NULL,
    started_at   TIMESTAMPTZ NOT NULL,
    finished_at  TIMESTAMPTZ,
    sources      INTEGER DEFAULT 0,
    events       INTEGER DEFAULT 0,
    missions     INTEGER DEFAULT 0,
    transactions INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS events (
    id     BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq    INTEGER NOT NULL,
    kind   TEXT NOT NULL,
    ts     TIMESTAMPTZ NOT NULL,
    source TEXT NOT NULL,
    line   INTEGER NOT NULL,
    fields JSONB DEFAULT '{}',
    CONSTRAINT uq_event_seq UNIQUE (run_id, seq)
);

CREATE TABLE IF NOT EXISTS missions (
    run_id              TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    mission_id          BIGINT NOT NULL,
    name                TEXT DEFAULT '',
    faction             TEXT DEFAULT '',
    destination_system  TEXT DEFAULT '',
    destination_station TEXT DEFAULT '',
    PRIMARY KEY (run_id, mission_id)
);

CREATE TABLE IF NOT EXISTS mission_transitions (
    id                      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    run_id                  TEXT NOT NULL,
    mission_id              BIGINT NOT NULL,
    seq                     INTEGER NOT NULL,
    kind                    TEXT NOT NULL,
    ts                      TIMESTAMPTZ NOT NULL,
    new_destination_system  TEXT DEFAULT '',
    new_destination_station TEXT DEFAULT '',
    source                  TEXT NOT NULL,
    line                    INTEGER NOT NULL,
    FOREIGN KEY (run_id, mission_id) REFERENCES missions(run_id, mission_id) ON DELETE CASCADE,
    CONSTRAINT uq_transition_key UNIQUE (run_id, mission_id, kind, ts)
);

CREATE TABLE IF NOT EXISTS transactions (
    id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    ts           TIMESTAMPTZ NOT NULL,
    side         TEXT NOT NULL,
    market_id    BIGINT NOT NULL,
    commodity    TEXT NOT NULL,
    count        BIGINT NOT NULL,
    amount       BIGINT NOT NULL,
    station_name TEXT DEFAULT '',
    star_system  TEXT DEFAULT '',
    source       TEXT NOT NULL,
    line         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_run_kind ON events (run_id, kind);
CREATE INDEX IF NOT EXISTS idx_events_ts ON events (ts);
CREATE INDEX IF NOT EXISTS idx_events_fields ON events USING GIN (fields);
CREATE INDEX IF NOT EXISTS idx_transitions_mission ON mission_transitions (run_id, mission_id);
CREATE INDEX IF NOT EXISTS idx_transactions_run_market ON transactions (run_id, market_id);
CREATE INDEX IF NOT EXISTS idx_transactions_commodity ON transactions (commodity);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
