package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"leeter/internal/journal"
	"leeter/internal/mission"
	"leeter/internal/report"
	"leeter/internal/validate"
)

type EventCountsInput struct{}

type MissionBoardInput struct {
	IncludeUnnamed bool `json:"include_unnamed,omitempty" jsonschema:"also list missions that were never accepted"`
}

type GetMissionInput struct {
	MissionID int64 `json:"mission_id" jsonschema:"mission identifier"`
}

type MarketLedgerInput struct {
	Commodity string `json:"commodity,omitempty" jsonschema:"restrict to one commodity, case-insensitive"`
	MarketID  int64  `json:"market_id,omitempty" jsonschema:"restrict to one market"`
}

type BriefTimelineInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"return only the most recent entries"`
}

type ValidateInput struct{}

type RunSQLInput struct {
	Query  string         `json:"query" jsonschema:"a single SELECT or WITH statement"`
	Params map[string]any `json:"params,omitempty" jsonschema:"positional parameters keyed 1, 2, ..."`
}

type KindCountOutput struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

type EventCountsOutput struct {
	Counts []KindCountOutput `json:"counts"`
}

type TransitionOutput struct {
	Kind                  string `json:"kind"`
	Timestamp             string `json:"timestamp"`
	NewDestinationSystem  string `json:"new_destination_system,omitempty"`
	NewDestinationStation string `json:"new_destination_station,omitempty"`
}

type MissionOutput struct {
	MissionID          int64              `json:"mission_id"`
	Name               string             `json:"name"`
	Faction            string             `json:"faction,omitempty"`
	DestinationSystem  string             `json:"destination_system,omitempty"`
	DestinationStation string             `json:"destination_station,omitempty"`
	Transitions        []TransitionOutput `json:"transitions"`
}

type MissionBoardOutput struct {
	Missions []MissionOutput `json:"missions"`
}

type LedgerEntryOutput struct {
	Timestamp   string `json:"timestamp"`
	Side        string `json:"side"`
	MarketID    int64  `json:"market_id"`
	Commodity   string `json:"commodity"`
	Count       int64  `json:"count"`
	Amount      int64  `json:"amount"`
	StationName string `json:"station_name"`
	StarSystem  string `json:"star_system"`
}

type MarketLedgerOutput struct {
	Entries []LedgerEntryOutput `json:"entries"`
}

type TimelineEntryOutput struct {
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail,omitempty"`
}

type BriefTimelineOutput struct {
	Entries []TimelineEntryOutput `json:"entries"`
}

type IssueOutput struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Subject  string `json:"subject"`
	Source   string `json:"source,omitempty"`
	Line     int    `json:"line,omitempty"`
}

type ValidateOutput struct {
	Issues []IssueOutput `json:"issues"`
}

type RunSQLOutput struct {
	Rows []map[string]any `json:"rows"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "event_counts",
		Description: "Count journal events by kind, least frequent first",
	}, s.handleEventCounts)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "mission_board",
		Description: "List reconstructed missions with their lifecycle transitions",
	}, s.handleMissionBoard)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_mission",
		Description: "Retrieve one reconstructed mission by id",
	}, s.handleGetMission)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "market_ledger",
		Description: "List market buys and sells with the station and system they happened at",
	}, s.handleMarketLedger)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "brief_timeline",
		Description: "Return the condensed activity timeline",
	}, s.handleBriefTimeline)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "validate",
		Description: "Audit the journal for orphaned missions, duplicates and unresolved markets",
	}, s.handleValidate)

	if s.db != nil {
		sdk.AddTool(s.mcp, &sdk.Tool{
			Name:        "run_sql",
			Description: "Run a read-only SQL query against the export archive",
		}, s.handleRunSQL)
	}
}

func (s *Server) handleEventCounts(ctx context.Context, req *sdk.CallToolRequest, input EventCountsInput) (*sdk.CallToolResult, EventCountsOutput, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, EventCountsOutput{}, err
	}

	counts := report.EventCounts(records)
	output := make([]KindCountOutput, 0, len(counts))
	for _, c := range counts {
		output = append(output, KindCountOutput{Kind: c.Kind, Count: c.Count})
	}
	return nil, EventCountsOutput{Counts: output}, nil
}

func (s *Server) handleMissionBoard(ctx context.Context, req *sdk.CallToolRequest, input MissionBoardInput) (*sdk.CallToolResult, MissionBoardOutput, error) {
	store, err := s.reconstruct(ctx)
	if err != nil {
		return nil, MissionBoardOutput{}, err
	}

	output := make([]MissionOutput, 0, store.Len())
	for _, id := range store.IDs() {
		m := store.FindOrNil(id)
		if !input.IncludeUnnamed && !m.Named() {
			continue
		}
		output = append(output, missionOutput(id, *m))
	}
	return nil, MissionBoardOutput{Missions: output}, nil
}

func (s *Server) handleGetMission(ctx context.Context, req *sdk.CallToolRequest, input GetMissionInput) (*sdk.CallToolResult, MissionOutput, error) {
	if input.MissionID == 0 {
		return nil, MissionOutput{}, fmt.Errorf("mission_id is required")
	}
	store, err := s.reconstruct(ctx)
	if err != nil {
		return nil, MissionOutput{}, err
	}
	m := store.FindOrNil(input.MissionID)
	if m == nil {
		return nil, MissionOutput{}, fmt.Errorf("mission %d not found", input.MissionID)
	}
	return nil, missionOutput(input.MissionID, *m), nil
}

func (s *Server) handleMarketLedger(ctx context.Context, req *sdk.CallToolRequest, input MarketLedgerInput) (*sdk.CallToolResult, MarketLedgerOutput, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, MarketLedgerOutput{}, err
	}
	ledger, err := report.MarketLedger(records)
	if err != nil {
		return nil, MarketLedgerOutput{}, err
	}

	output := make([]LedgerEntryOutput, 0, len(ledger))
	for _, e := range ledger {
		if input.Commodity != "" && !strings.EqualFold(e.Commodity, input.Commodity) {
			continue
		}
		if input.MarketID != 0 && e.MarketID != input.MarketID {
			continue
		}
		side := "sell"
		if e.Buy {
			side = "buy"
		}
		output = append(output, LedgerEntryOutput{
			Timestamp:   formatTime(e.Timestamp),
			Side:        side,
			MarketID:    e.MarketID,
			Commodity:   e.Commodity,
			Count:       e.Count,
			Amount:      e.Amount,
			StationName: e.StationName,
			StarSystem:  e.StarSystem,
		})
	}
	return nil, MarketLedgerOutput{Entries: output}, nil
}

func (s *Server) handleBriefTimeline(ctx context.Context, req *sdk.CallToolRequest, input BriefTimelineInput) (*sdk.CallToolResult, BriefTimelineOutput, error) {
	if input.Limit < 0 {
		return nil, BriefTimelineOutput{}, fmt.Errorf("limit must not be negative")
	}
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, BriefTimelineOutput{}, err
	}

	brief := report.BriefTimeline(records, s.opts.BriefBlacklist, s.opts.BriefDedupe)
	if input.Limit > 0 && len(brief) > input.Limit {
		brief = brief[len(brief)-input.Limit:]
	}

	output := make([]TimelineEntryOutput, 0, len(brief))
	for _, rec := range brief {
		output = append(output, TimelineEntryOutput{
			Timestamp: formatTime(rec.Timestamp),
			Kind:      rec.Kind,
			Detail:    report.Describe(rec),
		})
	}
	return nil, BriefTimelineOutput{Entries: output}, nil
}

func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, input ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	result := validate.Run(records)
	output := make([]IssueOutput, 0, len(result.Issues))
	for _, issue := range result.Issues {
		output = append(output, IssueOutput{
			Severity: string(issue.Severity),
			Code:     issue.Code,
			Message:  issue.Message,
			Subject:  issue.Subject,
			Source:   issue.Source,
			Line:     issue.Line,
		})
	}
	return nil, ValidateOutput{Issues: output}, nil
}

func (s *Server) handleRunSQL(ctx context.Context, req *sdk.CallToolRequest, input RunSQLInput) (*sdk.CallToolResult, RunSQLOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, RunSQLOutput{}, fmt.Errorf("query is required")
	}
	rows, err := s.db.RunSQL(ctx, input.Query, input.Params)
	if err != nil {
		return nil, RunSQLOutput{}, err
	}
	return nil, RunSQLOutput{Rows: rows}, nil
}

func (s *Server) reconstruct(ctx context.Context) (*mission.MemoryStore, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, err
	}
	return mission.Reconstruct(records, s.engine())
}

func missionOutput(id int64, m mission.Mission) MissionOutput {
	out := MissionOutput{
		MissionID:          id,
		Name:               m.Name,
		Faction:            m.Faction,
		DestinationSystem:  m.DestinationSystem,
		DestinationStation: m.DestinationStation,
		Transitions:        make([]TransitionOutput, 0, len(m.History)),
	}
	for _, t := range m.History {
		transition := TransitionOutput{Kind: t.Record.Kind, Timestamp: formatTime(t.Record.Timestamp)}
		if p, ok := t.Record.Payload.(journal.MissionTransition); ok {
			transition.NewDestinationSystem = p.NewDestinationSystem
			transition.NewDestinationStation = p.NewDestinationStation
		}
		out.Transitions = append(out.Transitions, transition)
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
