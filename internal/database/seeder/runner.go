package seeder

import (
	"context"
	"fmt"

	"fsti-hub/internal/database"

	"go.uber.org/zap"
)

type Runner struct {
	// DB enables the column check for table seeders. Nil skips it.
	DB      database.DB
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run executes every seeder in order and returns how many rows were inserted.
func (r Runner) Run(ctx context.Context) (int, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	total := 0
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if ts, ok := s.(tableSeeder); ok && r.DB != nil {
			table, cols := ts.Table()
			if err := EnsureTableColumns(ctx, r.DB, table, cols...); err != nil {
				return total, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		n, err := s.Run(ctx)
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", zap.String("seeder", s.Name()), zap.Int("inserted", n))
		total += n
	}
	return total, nil
}
