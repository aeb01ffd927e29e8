package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ReadSQLite reads every row of table from the SQLite database at path. An
// empty table name is accepted when the database holds exactly one table.
func ReadSQLite(ctx context.Context, path, table string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if strings.TrimSpace(table) == "" {
		table, err = soleTable(ctx, db)
		if err != nil {
			return nil, err
		}
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query table %q: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []Row
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(Row, len(columns))
		for i, v := range values {
			row[i] = sqlCell(v)
		}
		if row.blank() {
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return NewTable(columns, out), nil
}

func soleTable(ctx context.Context, db *sql.DB) (string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	switch len(names) {
	case 0:
		return "", errors.New("sqlite database has no tables")
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("sqlite database has tables %v; set input.table", names)
	}
}

func sqlCell(v any) Cell {
	switch value := v.(type) {
	case nil:
		return Empty()
	case int64:
		return Number(float64(value))
	case float64:
		return Number(value)
	case bool:
		if value {
			return Number(1)
		}
		return Number(0)
	case []byte:
		return Text(string(value))
	case string:
		return Text(value)
	default:
		return Text(fmt.Sprint(value))
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
