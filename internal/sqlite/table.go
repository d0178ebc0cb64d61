package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is the created_at format in SQLite and JSONL. Fixed-width
// fractional seconds keep lexical order equal to time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and hydrates every row with hydrate.
func queryAll[T any](ctx context.Context, db *sql.DB, query string, hydrate func(rowScanner) (*T, error)) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		v, err := hydrate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// persistJSONL rewrites the JSONL file name with records.
func persistJSONL[R any](b *Backend, name string, records []R) error {
	lines, err := marshalRecords(records)
	if err != nil {
		return err
	}
	if err := writeJSONL(b.jsonlPath(name), lines); err != nil {
		return fmt.Errorf("persisting %s: %w", name, err)
	}
	return nil
}
