package journal

import "time"

// Event kinds the tool gives a typed payload.
const (
	KindMissionAccepted   = "MissionAccepted"
	KindMissionCompleted  = "MissionCompleted"
	KindMissionAbandoned  = "MissionAbandoned"
	KindMissionFailed     = "MissionFailed"
	KindMissionRedirected = "MissionRedirected"
	KindMarketBuy         = "MarketBuy"
	KindMarketSell        = "MarketSell"
	KindDocked            = "Docked"
)

// Record is one decoded journal line.
type Record struct {
	Kind      string
	Timestamp time.Time
	Source    string
	Line      int
	Fields    map[string]any
	Payload   Payload
}

// String returns the named field when it holds a string.
func (r Record) String(name string) string {
	if s, ok := r.Fields[name].(string); ok {
		return s
	}
	return ""
}

// Number returns the named field when it holds a number.
func (r Record) Number(name string) (float64, bool) {
	n, ok := r.Fields[name].(float64)
	return n, ok
}

// Payload is the typed view of a record. The concrete type is one of
// MissionAccepted, MissionTransition, MarketTransaction, Docked or
// Unrecognized.
type Payload interface {
	isPayload()
}

type MissionAccepted struct {
	MissionID          int64
	Name               string
	Faction            string
	DestinationSystem  string
	DestinationStation string
}

// MissionTransition covers Completed, Abandoned, Failed and Redirected.
type MissionTransition struct {
	MissionID             int64
	NewDestinationSystem  string
	NewDestinationStation string
}

type MarketTransaction struct {
	MarketID      int64
	Type          string
	TypeLocalised string
	Count         int64
	Amount        int64
	Buy           bool
}

// Commodity prefers the localised commodity name.
func (t MarketTransaction) Commodity() string {
	if t.TypeLocalised != "" {
		return t.TypeLocalised
	}
	return t.Type
}

type Docked struct {
	MarketID    int64
	StationName string
	StarSystem  string
}

// Unrecognized marks kinds without a typed payload; read Record.Fields instead.
type Unrecognized struct{}

func (MissionAccepted) isPayload()   {}
func (MissionTransition) isPayload() {}
func (MarketTransaction) isPayload() {}
func (Docked) isPayload()            {}
func (Unrecognized) isPayload()      {}

// MissionID returns the mission identifier carried by a mission lifecycle record.
func (r Record) MissionID() (int64, bool) {
	switch p := r.Payload.(type) {
	case MissionAccepted:
		return p.MissionID, true
	case MissionTransition:
		return p.MissionID, true
	default:
		return 0, false
	}
}
