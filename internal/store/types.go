package store

import "time"

type RunCounts struct {
	Sources      int
	Events       int
	Missions     int
	Transactions int
}

type Run struct {
	ID         string
	Project    string
	LogDir     string
	StartedAt  time.Time
	FinishedAt *time.Time
	RunCounts
}

type EventInput struct {
	Seq       int
	Kind      string
	Timestamp time.Time
	Source    string
	Line      int
	Fields    map[string]any
}

type MissionInput struct {
	MissionID          int64
	Name               string
	Faction            string
	DestinationSystem  string
	DestinationStation string
	Transitions        []TransitionInput
}

type TransitionInput struct {
	Seq                   int
	Kind                  string
	Timestamp             time.Time
	NewDestinationSystem  string
	NewDestinationStation string
	Source                string
	Line                  int
}

type TransactionInput struct {
	Timestamp   time.Time
	Buy         bool
	MarketID    int64
	Commodity   string
	Count       int64
	Amount      int64
	StationName string
	StarSystem  string
	Source      string
	Line        int
}

// Side is the ledger column value for a transaction.
func (t TransactionInput) Side() string {
	if t.Buy {
		return "buy"
	}
	return "sell"
}
