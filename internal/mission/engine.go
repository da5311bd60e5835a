package mission

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"leeter/internal/journal"
)

// DuplicatePolicy decides what Apply does with a repeated lifecycle event.
type DuplicatePolicy string

const (
	DuplicateFail DuplicatePolicy = "fail"
	DuplicateSkip DuplicatePolicy = "skip"
)

func ParseDuplicatePolicy(value string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", DuplicateFail:
		return DuplicateFail, nil
	case DuplicateSkip:
		return DuplicateSkip, nil
	default:
		return "", fmt.Errorf("unsupported duplicate policy: %q", value)
	}
}

type Engine struct {
	Policy DuplicatePolicy
	Logger *slog.Logger

	skipped int
}

func NewEngine(policy DuplicatePolicy, logger *slog.Logger) *Engine {
	if policy == "" {
		policy = DuplicateFail
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{Policy: policy, Logger: logger}
}

// Apply folds one lifecycle record into the mission it references,
// creating the mission on first reference.
func (e *Engine) Apply(store Store, rec journal.Record) error {
	if !IsLifecycleKind(rec.Kind) {
		return &UnknownEventKindError{Kind: rec.Kind}
	}
	id, ok := rec.MissionID()
	if !ok {
		return &UnknownEventKindError{Kind: rec.Kind}
	}

	current := Mission{}
	if existing := store.FindOrNil(id); existing != nil {
		current = *existing
	}

	next, err := Fold(current, rec)
	if err != nil {
		var dup *DuplicateEventError
		if e.Policy == DuplicateSkip && errors.As(err, &dup) {
			e.skipped++
			e.Logger.Warn("skipping duplicate mission event",
				"mission_id", dup.Key.MissionID,
				"kind", dup.Key.Kind,
				"timestamp", dup.Key.Timestamp,
				"source", dup.Source,
				"line", dup.Line,
			)
			return nil
		}
		return err
	}

	store.Save(id, next)
	return nil
}

// Skipped counts duplicates dropped under DuplicateSkip.
func (e *Engine) Skipped() int {
	return e.skipped
}

// Reconstruct filters a stream down to the lifecycle kinds and folds it into
// a fresh store.
func Reconstruct(records []journal.Record, engine *Engine) (*MemoryStore, error) {
	store := NewMemoryStore()
	for _, rec := range Filter(records) {
		if err := engine.Apply(store, rec); err != nil {
			return nil, fmt.Errorf("reconstructing missions: %w", err)
		}
	}
	return store, nil
}
