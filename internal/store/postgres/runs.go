package postgres

import (
	"context"
	"fmt"
	"time"

	"leeter/internal/store"
)

func (c *Client) BeginRun(ctx context.Context, run store.Run) error {
	query := `
INSERT INTO runs (id, project, log_dir, started_at)
VALUES ($1, $2, $3, $4)
`
	if _, err := c.pool.Exec(ctx, query, run.ID, run.Project, run.LogDir, run.StartedAt.UTC()); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (c *Client) FinishRun(ctx context.Context, runID string, finishedAt time.Time, counts store.RunCounts) error {
	query := `
UPDATE runs
SET finished_at = $1, sources = $2, events = $3, missions = $4, transactions = $5
WHERE id = $6
`
	tag, err := c.pool.Exec(ctx, query,
		finishedAt.UTC(),
		counts.Sources,
		counts.Events,
		counts.Missions,
		counts.Transactions,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if tag.RowsAffected() == 0 {
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
LIMIT $1
`
	rows, err := c.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		var run store.Run
		if err := rows.Scan(
			&run.ID,
			&run.Project,
			&run.LogDir,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Sources,
			&run.Events,
			&run.Missions,
			&run.Transactions,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
