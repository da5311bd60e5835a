package report

import (
	"time"

	"leeter/internal/journal"
)

var base = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func rec(kind string, minutes int, payload journal.Payload) journal.Record {
	if payload == nil {
		payload = journal.Unrecognized{}
	}
	return journal.Record{
		Kind:      kind,
		Timestamp: at(minutes),
		Source:    "Journal.test.log",
		Line:      minutes + 1,
		Fields:    map[string]any{},
		Payload:   payload,
	}
}

func accepted(id int64, name string, minutes int) journal.Record {
	return rec(journal.KindMissionAccepted, minutes, journal.MissionAccepted{
		MissionID: id,
		Name:      name,
		Faction:   "Pilots Federation",
	})
}

func transition(kind string, id int64, minutes int) journal.Record {
	return rec(kind, minutes, journal.MissionTransition{MissionID: id})
}

func docked(marketID int64, station, system string, minutes int) journal.Record {
	return rec(journal.KindDocked, minutes, journal.Docked{MarketID: marketID, StationName: station, StarSystem: system})
}

func buy(marketID int64, commodity string, count, amount int64, minutes int) journal.Record {
	return rec(journal.KindMarketBuy, minutes, journal.MarketTransaction{
		MarketID:      marketID,
		Type:          "gold",
		TypeLocalised: commodity,
		Count:         count,
		Amount:        amount,
		Buy:           true,
	})
}

func kindsOf(records []journal.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Kind)
	}
	return out
}
