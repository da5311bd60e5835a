package sqlite

import (
	"context"
	"fmt"

	"leeter/internal/store"
)

// UpsertMission replaces the mission row and its transitions for a run.
func (c *Client) UpsertMission(ctx context.Context, runID string, m store.MissionInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO missions (run_id, mission_id, name, faction, destination_system, destination_station)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (run_id, mission_id) DO UPDATE SET
		name = excluded.name,
		faction = excluded.faction,
		destination_system = excluded.destination_system,
		destination_station = excluded.destination_station
	`
	if _, err := tx.ExecContext(ctx, query, runID, m.MissionID, m.Name, m.Faction, m.DestinationSystem, m.DestinationStation); err != nil {
		return fmt.Errorf("upserting mission %d: %w", m.MissionID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM mission_transitions WHERE run_id = ? AND mission_id = ?`, runID, m.MissionID); err != nil {
		return fmt.Errorf("clearing transitions for mission %d: %w", m.MissionID, err)
	}

	for _, t := range m.Transitions {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO mission_transitions (run_id, mission_id, seq, kind, ts, new_destination_system, new_destination_station, source, line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			runID,
			m.MissionID,
			t.Seq,
			t.Kind,
			formatTime(t.Timestamp),
			t.NewDestinationSystem,
			t.NewDestinationStation,
			t.Source,
			t.Line,
		)
		if err != nil {
			return fmt.Errorf("inserting transition for mission %d: %w", m.MissionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mission %d: %w", m.MissionID, err)
	}
	return nil
}
