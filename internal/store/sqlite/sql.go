package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"leeter/internal/store"
)

// RunSQL runs a query on a connection switched to query_only, so SQLite
// itself refuses writes hidden behind a leading SELECT or WITH.
func (c *Client) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if err := store.CheckReadOnly(query); err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}

	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON;"); err != nil {
		return nil, fmt.Errorf("enabling query_only: %w", err)
	}

	results, queryErr := queryRows(ctx, conn, query, store.PositionalArgs(params))

	if _, err := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA query_only = OFF;"); err != nil {
		// A connection stuck in query_only must not go back to the pool.
		conn.Raw(func(any) error { return driver.ErrBadConn })
		return nil, errors.Join(queryErr, fmt.Errorf("resetting query_only: %w", err))
	}
	if queryErr != nil {
		return nil, queryErr
	}
	return results, nil
}

func queryRows(ctx context.Context, conn *sql.Conn, query string, args []any) ([]map[string]any, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns: %w", err)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return results, nil
}
