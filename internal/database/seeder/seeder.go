package seeder

import (
	"context"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

// tableSeeder is implemented by seeders that want their target table checked
// before running.
type tableSeeder interface {
	Table() (string, []string)
}
