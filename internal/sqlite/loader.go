package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and columns.
// The first column is the UUID key.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{usersJSONL, "users", []string{"user_id", "name", "role", "created_at"}},
	{tenantsJSONL, "tenants", []string{"tenant_id", "name", "description", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir into its SQLite table in
// one transaction: either every file loads or the database stays empty.
// It returns the number of rows loaded per table.
func loadAllJSONL(db *sql.DB, dataDir string) (map[string]int, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := make(map[string]int, len(jsonlTableMapping))
	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return nil, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		loaded[mapping.table] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// insertRecords inserts JSONL records into table. Only the listed columns
// are read, so fields added by newer versions are ignored. The key in
// columns[0] is rewritten to the canonical hyphenated UUID that lookups
// use. Records that are not objects, lack a column, have an unparsable
// key, or violate a constraint are skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		complete := true
		for i, col := range columns {
			s, ok := obj[col].(string)
			if !ok {
				complete = false
				break
			}
			args[i] = s
		}
		if !complete {
			continue
		}
		key, err := uuid.Parse(args[0].(string))
		if err != nil {
			continue
		}
		args[0] = key.String()
		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}
