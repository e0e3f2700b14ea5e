package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/config"
)

var (
	// Global flags. Unset flags leave the environment's value in place.
	addr        string
	dbPath      string
	databaseURL string
	logLevel    string
)

// rootCmd runs serve when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "ncnews",
	Short: "NC News - articles, comments, topics and users over a REST API",
	Long: `ncnews serves a JSON REST API for a news site backed by SQLite
(default) or PostgreSQL (when DATABASE_URL or --database-url is set).

Environment:
  PORT / NCNEWS_ADDR      listen address (default :9090)
  DB_PATH                 SQLite file (default data/ncnews.db)
  DATABASE_URL            PostgreSQL URL; selects the postgres store
  LOG_LEVEL               debug, info, warn or error
  NCNEWS_SEED_ON_START    seed the database before serving`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address, e.g. :9090")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd, seedCmd, routesCmd)
}

// loadConfig reads the environment, then applies any flag the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("db-path") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return cfg, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
	}
	return cfg, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
