package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fsti-hub/internal/database"
)

var ErrSchemaMismatch = errors.New("seed target schema mismatch")

// EnsureTableColumns checks that table exists in the public schema with every
// column a seeder writes. All missing columns are reported in one error.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("nil db")
	}
	if table == "" {
		return errors.New("empty table")
	}
	if len(columns) == 0 {
		return nil
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	defer rows.Close()

	existing := make(map[string]struct{}, len(columns))
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(existing) == 0 {
		return fmt.Errorf("%w: table %s not found, run migrations first", ErrSchemaMismatch, table)
	}
	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}
