package export

import (
	"context"
	"time"

	"leeter/internal/store"
)

// Store is the write side of the archive used by Run.
type Store interface {
	EnsureSchema(ctx context.Context) error
	BeginRun(ctx context.Context, run store.Run) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, counts store.RunCounts) error
	InsertEvents(ctx context.Context, runID string, events []store.EventInput) error
	UpsertMission(ctx context.Context, runID string, m store.MissionInput) error
	InsertTransactions(ctx context.Context, runID string, entries []store.TransactionInput) error
}
