package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leeter/internal/store"
)

func (c *Client) InsertEvents(ctx context.Context, runID string, events []store.EventInput) error {
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		fieldsJSON, err := json.Marshal(e.Fields)
		if err != nil {
			return fmt.Errorf("marshaling fields for %s line %d: %w", e.Source, e.Line, err)
		}
		rows = append(rows, []any{runID, e.Seq, e.Kind, e.Timestamp.UTC(), e.Source, e.Line, fieldsJSON})
	}

	_, err := c.pool.CopyFrom(ctx,
		pgx.Identifier{"events"},
		[]string{"run_id", "seq", "kind", "ts", "source", "line", "fields"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying events: %w", err)
	}
	return nil
}

func (c *Client) InsertTransactions(ctx context.Context, runID string, entries []store.TransactionInput) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			runID,
			e.Timestamp.UTC(),
			e.Side(),
			e.MarketID,
			e.Commodity,
			e.Count,
			e.Amount,
			e.StationName,
			e.StarSystem,
			e.Source,
			e.Line,
		})
	}

	_, err := c.pool.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"run_id", "ts", "side", "market_id", "commodity", "count", "amount", "station_name", "star_system", "source", "line"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying transactions: %w", err)
	}
	return nil
}
