// Package rxsql turns database/sql queries into cold Observables.
package rxsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AnatoleLucet/rx"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs query on every subscription and emits one value per row, built
// by scan, then completes.
//
// The query context is cancelled when the subscription ends, so a
// downstream Take closes the cursor without reading the remaining rows.
func Query[T any](db Querier, query string, scan func(*sql.Rows) (T, error), args ...any) rx.Observable[T] {
	return rx.Create(func(sub rx.Subscriber[T]) {
		ctx, cancel := context.WithCancel(context.Background())
		sub.OnCleanup(cancel)

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			sub.Error(fmt.Errorf("rxsql: query: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			if sub.IsDisposed() {
				return
			}

			v, err := scan(rows)
			if err != nil {
				sub.Error(fmt.Errorf("rxsql: scan: %w", err))
				return
			}
			sub.Next(v)
		}

		if err := rows.Err(); err != nil {
			sub.Error(fmt.Errorf("rxsql: rows: %w", err))
			return
		}
		sub.Complete()
	})
}

// Column scans a single-column row into a T.
func Column[T any](rows *sql.Rows) (T, error) {
	var v T
	err := rows.Scan(&v)
	return v, err
}
