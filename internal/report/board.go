package report

import (
	"leeter/internal/journal"
	"leeter/internal/mission"
)

// MissionBoard reconstructs missions from the stream and returns the named
// ones in store order.
func MissionBoard(records []journal.Record, engine *mission.Engine) ([]mission.Mission, error) {
	store, err := mission.Reconstruct(records, engine)
	if err != nil {
		return nil, err
	}
	return NamedMissions(store), nil
}

// NamedMissions skips missions that were never accepted.
func NamedMissions(store *mission.MemoryStore) []mission.Mission {
	board := make([]mission.Mission, 0, store.Len())
	for _, m := range store.Missions() {
		if !m.Named() {
			continue
		}
		board = append(board, m)
	}
	return board
}
