package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/seed"
	"github.com/sakif/nc-news/internal/server"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace every row with the fixture dataset",
	Long: `Run migrations, delete all topics, users, articles and comments, and
load the fixture dataset in one transaction.

Examples:
  ncnews seed                                    # SQLite at DB_PATH
  ncnews seed --database-url postgres://...      # PostgreSQL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg.LogLevel)
		ctx := cmd.Context()

		store, err := server.OpenStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("opening %s store: %w", cfg.Backend(), err)
		}
		defer store.Close()

		data := seed.Default()
		if err := store.Seed(ctx, data); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}

		logger.Info("database seeded",
			slog.String("backend", cfg.Backend()),
			slog.Int("topics", len(data.Topics)),
			slog.Int("users", len(data.Users)),
			slog.Int("articles", len(data.Articles)),
			slog.Int("comments", len(data.Comments)),
		)
		return nil
	},
}
