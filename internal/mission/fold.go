package mission

import (
	"slices"

	"leeter/internal/journal"
)

// Fold applies one lifecycle record to mission state and returns the new
// state. The input state is never modified.
func Fold(state Mission, rec journal.Record) (Mission, error) {
	switch payload := rec.Payload.(type) {
	case journal.MissionAccepted:
		if rec.Kind != journal.KindMissionAccepted {
			return state, &UnknownEventKindError{Kind: rec.Kind}
		}
		state.ID = payload.MissionID
		state.Name = payload.Name
		state.Faction = payload.Faction
		state.DestinationSystem = payload.DestinationSystem
		state.DestinationStation = payload.DestinationStation
		return state, nil
	case journal.MissionTransition:
		if !IsLifecycleKind(rec.Kind) || rec.Kind == journal.KindMissionAccepted {
			return state, &UnknownEventKindError{Kind: rec.Kind}
		}
		key := KeyFor(payload.MissionID, rec)
		if state.HasKey(key) {
			return state, &DuplicateEventError{Key: key, Source: rec.Source, Line: rec.Line}
		}
		// Clip so the append never writes into an array shared with the caller.
		state.History = append(slices.Clip(state.History), Transition{Key: key, Record: rec})
		return state, nil
	default:
		return state, &UnknownEventKindError{Kind: rec.Kind}
	}
}
