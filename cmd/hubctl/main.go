package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fsti-hub/internal/app"
	"fsti-hub/internal/config"
	"fsti-hub/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "hubctl",
	Short:         "Operate an FSTI Hub deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `hubctl runs maintenance tasks against the hub database.

Available commands:
  migrate      - Apply pending SQL migrations
  seed         - Load the traffic, event and news fixtures
  admin create - Create an admin account
  news import  - Crawl the configured news source once`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(migrateCmd, seedCmd, adminCmd, newsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openContainer loads the environment and connects to the database. The
// caller closes the container.
func openContainer() (*app.Container, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	lg, err := logger.New("hubctl", verbose || cfg.IsDevelopment())
	if err != nil {
		return nil, nil, err
	}
	c, err := app.NewContainer(cfg, lg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return c, lg, nil
}
