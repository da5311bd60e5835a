package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leeter/internal/store"
)

// UpsertMission replaces the mission row and its transitions for a run.
func (c *Client) UpsertMission(ctx context.Context, runID string, m store.MissionInput) error {
	return pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		query := `
INSERT INTO missions (run_id, mission_id, name, faction, destination_system, destination_station)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (run_id, mission_id) DO UPDATE SET
    name = EXCLUDED.name,
    faction = EXCLUDED.faction,
    destination_system = EXCLUDED.destination_system,
    destination_station = EXCLUDED.destination_station
`
		if _, err := tx.Exec(ctx, query, runID, m.MissionID, m.Name, m.Faction, m.DestinationSystem, m.DestinationStation); err != nil {
			return fmt.Errorf("upserting mission %d: %w", m.MissionID, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM mission_transitions WHERE run_id = $1 AND mission_id = $2`, runID, m.MissionID); err != nil {
			return fmt.Errorf("clearing transitions for mission %d: %w", m.MissionID, err)
		}

		batch := &pgx.Batch{}
		for _, t := range m.Transitions {
			batch.Queue(`
INSERT INTO mission_transitions (run_id, mission_id, seq, kind, ts, new_destination_system, new_destination_station, source, line)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`,
				runID,
				m.MissionID,
				t.Seq,
				t.Kind,
				t.Timestamp.UTC(),
				t.NewDestinationSystem,
				t.NewDestinationStation,
				t.Source,
				t.Line,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting transitions for mission %d: %w", m.MissionID, err)
		}
		return nil
	})
}
