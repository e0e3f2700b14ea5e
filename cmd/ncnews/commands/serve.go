package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/server"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server until SIGINT or SIGTERM.

Examples:
  ncnews serve                                   # SQLite at data/ncnews.db on :9090
  ncnews serve --seed                            # reset to the fixture data first
  ncnews serve --database-url postgres://...     # use PostgreSQL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Seed the database before serving")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.SeedOnStart = seedOnStart
	}

	logger := newLogger(cfg.LogLevel)

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.Start()
}
