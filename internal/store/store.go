package store

import (
	"context"
	"time"
)

// Store archives export runs. Each run owns its events, missions and
// ledger rows, so repeated exports of the same logs never collide.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	BeginRun(ctx context.Context, run Run) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, counts RunCounts) error
	InsertEvents(ctx context.Context, runID string, events []EventInput) error
	UpsertMission(ctx context.Context, runID string, m MissionInput) error
	InsertTransactions(ctx context.Context, runID string, entries []TransactionInput) error

	ListRuns(ctx context.Context, limit int) ([]Run, error)
	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
