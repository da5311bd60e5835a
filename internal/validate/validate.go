package validate

import (
	"errors"
	"fmt"

	"leeter/internal/journal"
	"leeter/internal/mission"
	"leeter/internal/report"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDuplicateTransition = "duplicate_transition"
	codeOrphanedMission     = "orphaned_mission"
	codeConflictingOutcome  = "conflicting_outcome"
	codeUnresolvedMarket    = "unresolved_market"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Subject  string
	Source   string
	Line     int
}

type Report struct {
	Issues []Issue
}

func (r *Report) Errors() []Issue   { return r.filter(SeverityError) }
func (r *Report) Warnings() []Issue { return r.filter(SeverityWarn) }

func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

func (r *Report) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// Run audits a merged stream. Unlike the report projections it keeps going
// past problems and collects every one it finds.
func Run(records []journal.Record) *Report {
	issues := make([]Issue, 0)
	issues = append(issues, checkMissions(records)...)
	issues = append(issues, checkMarkets(records)...)
	return &Report{Issues: issues}
}

func checkMissions(records []journal.Record) []Issue {
	var issues []Issue
	store := mission.NewMemoryStore()
	for _, rec := range mission.Filter(records) {
		id, _ := rec.MissionID()
		current := mission.Mission{}
		if existing := store.FindOrNil(id); existing != nil {
			current = *existing
		}
		next, err := mission.Fold(current, rec)
		var dup *mission.DuplicateEventError
		if errors.As(err, &dup) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDuplicateTransition,
				Message:  fmt.Sprintf("duplicate %s at %s", dup.Key.Kind, dup.Key.Timestamp.Format("2006-01-02 15:04:05")),
				Subject:  missionSubject(id),
				Source:   rec.Source,
				Line:     rec.Line,
			})
			continue
		}
		if err != nil {
			continue
		}
		store.Save(id, next)
	}

	for _, id := range store.IDs() {
		m := store.FindOrNil(id)
		if !m.Named() && len(m.History) > 0 {
			first := m.History[0].Record
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeOrphanedMission,
				Message:  fmt.Sprintf("%d transitions without an acceptance", len(m.History)),
				Subject:  missionSubject(id),
				Source:   first.Source,
				Line:     first.Line,
			})
		}
		if outcomes := outcomeKinds(m.History); len(outcomes) > 1 {
			last := m.History[len(m.History)-1].Record
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeConflictingOutcome,
				Message:  fmt.Sprintf("mission ended more than once: %v", outcomes),
				Subject:  missionSubject(id),
				Source:   last.Source,
				Line:     last.Line,
			})
		}
	}
	return issues
}

func checkMarkets(records []journal.Record) []Issue {
	docks := report.DockIndex(records)
	reported := make(map[int64]struct{})

	var issues []Issue
	for _, rec := range records {
		tx, ok := rec.Payload.(journal.MarketTransaction)
		if !ok {
			continue
		}
		if _, ok := docks[tx.MarketID]; ok {
			continue
		}
		if _, ok := reported[tx.MarketID]; ok {
			continue
		}
		reported[tx.MarketID] = struct{}{}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeUnresolvedMarket,
			Message:  fmt.Sprintf("%s without a Docked event for the market", rec.Kind),
			Subject:  fmt.Sprintf("market %d", tx.MarketID),
			Source:   rec.Source,
			Line:     rec.Line,
		})
	}
	return issues
}

// outcomeKinds lists the distinct terminal kinds in a history. Redirected
// is not an outcome.
func outcomeKinds(history []mission.Transition) []string {
	var kinds []string
	seen := make(map[string]struct{})
	for _, t := range history {
		switch t.Record.Kind {
		case journal.KindMissionCompleted, journal.KindMissionFailed, journal.KindMissionAbandoned:
		default:
			continue
		}
		if _, ok := seen[t.Record.Kind]; ok {
			continue
		}
		seen[t.Record.Kind] = struct{}{}
		kinds = append(kinds, t.Record.Kind)
	}
	return kinds
}

func missionSubject(id int64) string {
	return fmt.Sprintf("mission %d", id)
}
