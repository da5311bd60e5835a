package validate

import (
	"testing"
	"time"

	"leeter/internal/journal"
)

var base = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

func record(kind string, minutes int, payload journal.Payload) journal.Record {
	return journal.Record{
		Kind:      kind,
		Timestamp: base.Add(time.Duration(minutes) * time.Minute),
		Source:    "Journal.test.log",
		Line:      minutes + 1,
		Payload:   payload,
	}
}

func accepted(id int64, minutes int) journal.Record {
	return record(journal.KindMissionAccepted, minutes, journal.MissionAccepted{MissionID: id, Name: "Cargo Run"})
}

func transition(kind string, id int64, minutes int) journal.Record {
	return record(kind, minutes, journal.MissionTransition{MissionID: id})
}

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestRun(t *testing.T) {
	t.Run("clean stream", func(t *testing.T) {
		report := Run([]journal.Record{
			record(journal.KindDocked, 0, journal.Docked{MarketID: 9, StationName: "Jameson Memorial"}),
			accepted(1, 1),
			record(journal.KindMarketBuy, 2, journal.MarketTransaction{MarketID: 9, Count: 1, Amount: 100, Buy: true}),
			transition(journal.KindMissionCompleted, 1, 3),
		})
		if len(report.Issues) != 0 {
			t.Fatalf("expected no issues, got %v", report.Issues)
		}
		if report.HasErrors() {
			t.Fatalf("expected no errors")
		}
	})

	t.Run("duplicate transition", func(t *testing.T) {
		report := Run([]journal.Record{
			accepted(1, 0),
			transition(journal.KindMissionCompleted, 1, 3),
			transition(journal.KindMissionCompleted, 1, 3),
		})
		if len(report.Errors()) != 1 || report.Errors()[0].Code != codeDuplicateTransition {
			t.Fatalf("expected duplicate transition error, got %v", codes(report.Issues))
		}
		if report.Errors()[0].Subject != "mission 1" {
			t.Fatalf("expected mission subject, got %q", report.Errors()[0].Subject)
		}
	})

	t.Run("orphaned mission", func(t *testing.T) {
		report := Run([]journal.Record{
			transition(journal.KindMissionFailed, 5, 0),
			transition(journal.KindMissionRedirected, 5, 1),
		})
		warnings := report.Warnings()
		if len(warnings) != 1 || warnings[0].Code != codeOrphanedMission {
			t.Fatalf("expected orphaned mission warning, got %v", codes(report.Issues))
		}
		if warnings[0].Line != 1 {
			t.Fatalf("expected first transition line, got %d", warnings[0].Line)
		}
		if report.HasErrors() {
			t.Fatalf("expected orphans to be warnings only")
		}
	})

	t.Run("conflicting outcome", func(t *testing.T) {
		report := Run([]journal.Record{
			accepted(1, 0),
			transition(journal.KindMissionCompleted, 1, 1),
			transition(journal.KindMissionRedirected, 1, 2),
			transition(journal.KindMissionFailed, 1, 3),
		})
		warnings := report.Warnings()
		if len(warnings) != 1 || warnings[0].Code != codeConflictingOutcome {
			t.Fatalf("expected conflicting outcome warning, got %v", codes(report.Issues))
		}
	})

	t.Run("redirect after completion is fine", func(t *testing.T) {
		report := Run([]journal.Record{
			accepted(1, 0),
			transition(journal.KindMissionCompleted, 1, 1),
			transition(journal.KindMissionRedirected, 1, 2),
		})
		if len(report.Issues) != 0 {
			t.Fatalf("expected no issues, got %v", codes(report.Issues))
		}
	})

	t.Run("unresolved market reported once", func(t *testing.T) {
		report := Run([]journal.Record{
			record(journal.KindMarketBuy, 0, journal.MarketTransaction{MarketID: 42, Buy: true}),
			record(journal.KindMarketSell, 1, journal.MarketTransaction{MarketID: 42}),
		})
		errs := report.Errors()
		if len(errs) != 1 || errs[0].Code != codeUnresolvedMarket {
			t.Fatalf("expected one unresolved market error, got %v", codes(report.Issues))
		}
		if errs[0].Subject != "market 42" {
			t.Fatalf("expected market subject, got %q", errs[0].Subject)
		}
	})
}
