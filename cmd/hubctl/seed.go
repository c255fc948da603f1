package main

import (
	"fsti-hub/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the traffic, event and news fixtures",
	Long: `Load the fixtures compiled into the binary. Seeders skip tables that
already hold rows, so running seed twice is safe.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	c, lg, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	fx, err := seeder.LoadFixtures(seeder.Embedded())
	if err != nil {
		return err
	}
	r := seeder.Runner{
		DB: c.DB,
		Seeders: seeder.Defaults(seeder.Repositories{
			Traffic: c.Repos.Traffic,
			Events:  c.Repos.Events,
			News:    c.Repos.News,
		}, fx),
		Logger: lg,
	}
	n, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	lg.Info("seed finished", zap.Int("rows", n))
	cmd.Printf("%d row(s) inserted\n", n)
	return nil
}
