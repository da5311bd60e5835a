package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leeter/internal/store"
)

func (c *Client) BeginRun(ctx context.Context, run store.Run) error {
	query := `
	INSERT INTO runs (id, project, log_dir, started_at)
	VALUES (?, ?, ?, ?)
	`
	if _, err := c.db.ExecContext(ctx, query, run.ID, run.Project, run.LogDir, formatTime(run.StartedAt)); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (c *Client) FinishRun(ctx context.Context, runID string, finishedAt time.Time, counts store.RunCounts) error {
	query := `
	UPDATE runs
	SET finished_at = ?, sources = ?, events = ?, missions = ?, transactions = ?
	WHERE id = ?
	`
	result, err := c.db.ExecContext(ctx, query,
		formatTime(finishedAt),
		counts.Sources,
		counts.Events,
		counts.Missions,
		counts.Transactions,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finishing run: unknown run %s", runID)
	}
	return nil
}

func (c *Client) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
	SELECT id, project, log_dir, started_at, finished_at, sources, events, missions, transactions
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?
	`
	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		var run store.Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.Project,
			&run.LogDir,
			&startedAt,
			&finishedAt,
			&run.Sources,
			&run.Events,
			&run.Missions,
			&run.Transactions,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			t, err := parseTime(finishedAt.String)
			if err != nil {
				return nil, err
			}
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
