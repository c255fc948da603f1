package main

import (
	"fsti-hub/internal/database/migration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	c, lg, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	r := migration.Runner{FS: migration.Embedded(), Logger: lg}
	n, err := r.Run(cmd.Context(), c.DB.SQLDB())
	if err != nil {
		return err
	}
	lg.Info("migrations applied", zap.Int("count", n))
	cmd.Printf("%d migration(s) applied\n", n)
	return nil
}
