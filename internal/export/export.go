package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"leeter/internal/journal"
	"leeter/internal/logging"
	"leeter/internal/mission"
	"leeter/internal/report"
	"leeter/internal/store"
)

type Result struct {
	RunID        string
	Events       int
	Missions     int
	Transitions  int
	Transactions int
	Errors       []error
}

type Options struct {
	Project string
	LogDir  string
	Sources int
	Logger  *slog.Logger

	now   func() time.Time
	newID func() string
}

// Run archives one merged stream as a new run: every record, every
// reconstructed mission with its transitions, and the market ledger.
// Reconstruction and ledger errors abort before anything is written.
func Run(ctx context.Context, db Store, records []journal.Record, engine *mission.Engine, opts Options) (*Result, error) {
	now := opts.now
	if now == nil {
		now = time.Now
	}
	newID := opts.newID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	missions, err := mission.Reconstruct(records, engine)
	if err != nil {
		return nil, err
	}
	ledger, err := report.MarketLedger(records)
	if err != nil {
		return nil, fmt.Errorf("building market ledger: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{RunID: newID()}
	logger = logging.WithRun(logger, result.RunID, opts.Project)

	run := store.Run{ID: result.RunID, Project: opts.Project, LogDir: opts.LogDir, StartedAt: now()}
	if err := db.BeginRun(ctx, run); err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}

	if err := db.InsertEvents(ctx, result.RunID, eventInputs(records)); err != nil {
		return nil, fmt.Errorf("insert events: %w", err)
	}
	result.Events = len(records)
	logger.Debug("events archived", "count", result.Events)

	for _, id := range missions.IDs() {
		input := missionInput(id, *missions.FindOrNil(id))
		if err := db.UpsertMission(ctx, result.RunID, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("upserting mission %d: %w", id, err))
			continue
		}
		result.Missions++
		result.Transitions += len(input.Transitions)
	}
	logger.Debug("missions archived", "count", result.Missions, "transitions", result.Transitions)

	if err := db.InsertTransactions(ctx, result.RunID, transactionInputs(ledger)); err != nil {
		return nil, fmt.Errorf("insert transactions: %w", err)
	}
	result.Transactions = len(ledger)

	counts := store.RunCounts{
		Sources:      opts.Sources,
		Events:       result.Events,
		Missions:     result.Missions,
		Transactions: result.Transactions,
	}
	if err := db.FinishRun(ctx, result.RunID, now(), counts); err != nil {
		return nil, fmt.Errorf("finish run: %w", err)
	}

	logger.Info("export finished",
		"events", result.Events,
		"missions", result.Missions,
		"transactions", result.Transactions,
		"errors", len(result.Errors),
	)
	return result, nil
}

func eventInputs(records []journal.Record) []store.EventInput {
	events := make([]store.EventInput, 0, len(records))
	for i, rec := range records {
		events = append(events, store.EventInput{
			Seq:       i,
			Kind:      rec.Kind,
			Timestamp: rec.Timestamp,
			Source:    rec.Source,
			Line:      rec.Line,
			Fields:    rec.Fields,
		})
	}
	return events
}

func missionInput(id int64, m mission.Mission) store.MissionInput {
	input := store.MissionInput{
		MissionID:          id,
		Name:               m.Name,
		Faction:            m.Faction,
		DestinationSystem:  m.DestinationSystem,
		DestinationStation: m.DestinationStation,
		Transitions:        make([]store.TransitionInput, 0, len(m.History)),
	}
	for i, t := range m.History {
		transition := store.TransitionInput{
			Seq:       i,
			Kind:      t.Record.Kind,
			Timestamp: t.Record.Timestamp,
			Source:    t.Record.Source,
			Line:      t.Record.Line,
		}
		if p, ok := t.Record.Payload.(journal.MissionTransition); ok {
			transition.NewDestinationSystem = p.NewDestinationSystem
			transition.NewDestinationStation = p.NewDestinationStation
		}
		input.Transitions = append(input.Transitions, transition)
	}
	return input
}

func transactionInputs(ledger []report.LedgerEntry) []store.TransactionInput {
	entries := make([]store.TransactionInput, 0, len(ledger))
	for _, e := range ledger {
		entries = append(entries, store.TransactionInput{
			Timestamp:   e.Timestamp,
			Buy:         e.Buy,
			MarketID:    e.MarketID,
			Commodity:   e.Commodity,
			Count:       e.Count,
			Amount:      e.Amount,
			StationName: e.StationName,
			StarSystem:  e.StarSystem,
			Source:      e.Source,
			Line:        e.Line,
		})
	}
	return entries
}
