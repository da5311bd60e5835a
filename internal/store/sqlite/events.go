package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"leeter/internal/store"
)

func (c *Client) InsertEvents(ctx context.Context, runID string, events []store.EventInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO events (run_id, seq, kind, ts, source, line, fields)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		fieldsJSON, err := json.Marshal(e.Fields)
		if err != nil {
			return fmt.Errorf("marshaling fields for %s line %d: %w", e.Source, e.Line, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, e.Seq, e.Kind, formatTime(e.Timestamp), e.Source, e.Line, string(fieldsJSON)); err != nil {
			return fmt.Errorf("inserting event %s line %d: %w", e.Source, e.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}
	return nil
}

func (c *Client) InsertTransactions(ctx context.Context, runID string, entries []store.TransactionInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO transactions (run_id, ts, side, market_id, commodity, count, amount, station_name, star_system, source, line)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing transaction insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			runID,
			formatTime(e.Timestamp),
			e.Side(),
			e.MarketID,
			e.Commodity,
			e.Count,
			e.Amount,
			e.StationName,
			e.StarSystem,
			e.Source,
			e.Line,
		); err != nil {
			return fmt.Errorf("inserting transaction %s line %d: %w", e.Source, e.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transactions: %w", err)
	}
	return nil
}
