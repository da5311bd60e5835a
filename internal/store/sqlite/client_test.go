package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"leeter/internal/store"
)

var started = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "leeter.db"))
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func countRows(t *testing.T, c *Client, query string, args ...any) int64 {
	t.Helper()
	params := make(map[string]any, len(args))
	for i, arg := range args {
		params[string(rune('1'+i))] = arg
	}
	rows, err := c.RunSQL(context.Background(), query, params)
	if err != nil {
		t.Fatalf("running %q: %v", query, err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	n, ok := rows[0]["n"].(int64)
	if !ok {
		t.Fatalf("expected int64 count, got %T", rows[0]["n"])
	}
	return n
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	if err := client.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected second EnsureSchema to succeed, got %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	run := store.Run{ID: "run-1", Project: "commander", LogDir: "./logs", StartedAt: started}
	if err := client.BeginRun(ctx, run); err != nil {
		t.Fatalf("begin run: %v", err)
	}

	events := []store.EventInput{
		{Seq: 0, Kind: "Docked", Timestamp: started, Source: "a.log", Line: 1, Fields: map[string]any{"MarketID": float64(9)}},
		{Seq: 1, Kind: "MissionAccepted", Timestamp: started.Add(time.Minute), Source: "a.log", Line: 2, Fields: map[string]any{"MissionID": float64(1)}},
	}
	if err := client.InsertEvents(ctx, run.ID, events); err != nil {
		t.Fatalf("insert events: %v", err)
	}

	mission := store.MissionInput{
		MissionID: 1,
		Name:      "Cargo Run",
		Transitions: []store.TransitionInput{
			{Seq: 0, Kind: "MissionRedirected", Timestamp: started.Add(2 * time.Minute), NewDestinationSystem: "Sol", Source: "a.log", Line: 3},
			{Seq: 1, Kind: "MissionCompleted", Timestamp: started.Add(3 * time.Minute), Source: "a.log", Line: 4},
		},
	}
	if err := client.UpsertMission(ctx, run.ID, mission); err != nil {
		t.Fatalf("upsert mission: %v", err)
	}
	if err := client.UpsertMission(ctx, run.ID, mission); err != nil {
		t.Fatalf("second upsert mission: %v", err)
	}

	ledger := []store.TransactionInput{
		{Timestamp: started.Add(time.Minute), Buy: true, MarketID: 9, Commodity: "Gold", Count: 3, Amount: 900, StationName: "Jameson Memorial", StarSystem: "Shinrarta Dezhra", Source: "a.log", Line: 5},
	}
	if err := client.InsertTransactions(ctx, run.ID, ledger); err != nil {
		t.Fatalf("insert transactions: %v", err)
	}

	counts := store.RunCounts{Sources: 1, Events: 2, Missions: 1, Transactions: 1}
	if err := client.FinishRun(ctx, run.ID, started.Add(time.Hour), counts); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	if n := countRows(t, client, "SELECT count(*) AS n FROM events WHERE run_id = ?", run.ID); n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}
	if n := countRows(t, client, "SELECT count(*) AS n FROM mission_transitions WHERE run_id = ? AND mission_id = ?", run.ID, int64(1)); n != 2 {
		t.Fatalf("expected 2 transitions after re-upsert, got %d", n)
	}
	if n := countRows(t, client, "SELECT count(*) AS n FROM transactions WHERE side = 'buy' AND commodity = ?", "Gold"); n != 1 {
		t.Fatalf("expected 1 buy, got %d", n)
	}

	runs, err := client.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.RunCounts != counts {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) || got.FinishedAt == nil || !got.FinishedAt.Equal(started.Add(time.Hour)) {
		t.Fatalf("unexpected run times: %+v", got)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	client := newTestClient(t)
	if err := client.FinishRun(context.Background(), "missing", started, store.RunCounts{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEventsRequireRun(t *testing.T) {
	client := newTestClient(t)
	err := client.InsertEvents(context.Background(), "missing", []store.EventInput{{Kind: "Scan", Timestamp: started, Source: "a.log", Line: 1}})
	if err == nil {
		t.Fatalf("expected foreign key error")
	}
}

func TestRunSQLRejectsWrites(t *testing.T) {
	client := newTestClient(t)
	_, err := client.RunSQL(context.Background(), "DELETE FROM runs", nil)
	if !errors.Is(err, store.ErrNotReadOnly) {
		t.Fatalf("expected ErrNotReadOnly, got %v", err)
	}
}

func TestRunSQLCannotWriteThroughSelectPrefix(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	if err := client.BeginRun(ctx, store.Run{ID: "run-1", Project: "commander", LogDir: "./logs", StartedAt: started}); err != nil {
		t.Fatalf("begin run: %v", err)
	}

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "with delete", query: "WITH x AS (SELECT 1) DELETE FROM runs", wantErr: true},
		{name: "with update", query: "WITH x AS (SELECT 1) UPDATE runs SET project = 'other'", wantErr: true},
		{name: "with insert", query: "WITH x AS (SELECT 1) INSERT INTO runs (id, project, log_dir, started_at) SELECT 'run-2', project, log_dir, started_at FROM runs", wantErr: true},
		{name: "trailing statement", query: "SELECT 1; DELETE FROM runs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.RunSQL(ctx, tt.query, nil)
			if tt.wantErr && err == nil {
				t.Fatalf("expected write to be refused")
			}
			if n := countRows(t, client, "SELECT count(*) AS n FROM runs WHERE id = ? AND project = ?", "run-1", "commander"); n != 1 {
				t.Fatalf("expected run to survive, got %d", n)
			}
			if n := countRows(t, client, "SELECT count(*) AS n FROM runs"); n != 1 {
				t.Fatalf("expected exactly one run, got %d", n)
			}
		})
	}

	if err := client.FinishRun(ctx, "run-1", started.Add(time.Hour), store.RunCounts{}); err != nil {
		t.Fatalf("expected writes to work after a read-only query, got %v", err)
	}
}

func TestRunSQLAllowsSemicolonInLiteral(t *testing.T) {
	client := newTestClient(t)
	rows, err := client.RunSQL(context.Background(), "SELECT 'a;b' AS v", nil)
	if err != nil {
		t.Fatalf("run sql: %v", err)
	}
	if len(rows) != 1 || rows[0]["v"] != "a;b" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
