package mission

import (
	"time"

	"leeter/internal/journal"
)

// Whitelist is the event vocabulary the engine folds.
var Whitelist = []string{
	journal.KindMissionAccepted,
	journal.KindMissionCompleted,
	journal.KindMissionAbandoned,
	journal.KindMissionFailed,
	journal.KindMissionRedirected,
}

// Mission is the aggregate rebuilt from one mission's lifecycle events.
// ID and the descriptive attributes come only from MissionAccepted; a mission
// that was never accepted in the loaded logs keeps an empty Name.
type Mission struct {
	ID                 int64
	Name               string
	Faction            string
	DestinationSystem  string
	DestinationStation string
	History            []Transition
}

// Key identifies a lifecycle event for duplicate detection.
type Key struct {
	MissionID int64
	Kind      string
	Timestamp time.Time
}

// Transition is one recorded non-acceptance event, kept in event order.
type Transition struct {
	Key    Key
	Record journal.Record
}

// Named reports whether the mission was ever accepted.
func (m Mission) Named() bool {
	return m.Name != ""
}

// HasKey reports whether History already holds an event with this key.
func (m Mission) HasKey(key Key) bool {
	for _, t := range m.History {
		if t.Key == key {
			return true
		}
	}
	return false
}

// KeyFor builds the dedupe key of a mission lifecycle record. The timestamp
// is normalised to UTC so that equal instants compare equal.
func KeyFor(missionID int64, rec journal.Record) Key {
	return Key{MissionID: missionID, Kind: rec.Kind, Timestamp: rec.Timestamp.UTC()}
}

// IsLifecycleKind reports whether kind is one of the whitelisted mission kinds.
func IsLifecycleKind(kind string) bool {
	for _, k := range Whitelist {
		if k == kind {
			return true
		}
	}
	return false
}

// Filter keeps the mission lifecycle records of a stream, in order.
func Filter(records []journal.Record) []journal.Record {
	out := make([]journal.Record, 0)
	for _, rec := range records {
		if IsLifecycleKind(rec.Kind) {
			out = append(out, rec)
		}
	}
	return out
}
