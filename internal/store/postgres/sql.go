package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leeter/internal/store"
)

func (c *Client) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if err := store.CheckReadOnly(query); err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}

	var results []map[string]any
	err := pgx.BeginTxFunc(ctx, c.pool, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, store.PositionalArgs(params)...)
		if err != nil {
			return err
		}
		results, err = pgx.CollectRows(rows, pgx.RowToMap)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	if results == nil {
		results = make([]map[string]any, 0)
	}
	return results, nil
}
