package commands

import (
	"fmt"
	"io"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/config"
	sqliteRepo "github.com/sakif/nc-news/internal/repository/sqlite"
	"github.com/sakif/nc-news/internal/server"
)

var routesJSON bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Long: `Print every route the server mounts, as Markdown or JSON.
No database is needed; routes are read from an in-memory instance.

Examples:
  ncnews routes            # Markdown
  ncnews routes --json     # JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout(), routesJSON)
	},
}

func init() {
	routesCmd.Flags().BoolVar(&routesJSON, "json", false, "Output in JSON format")
}

func printRoutes(w io.Writer, asJSON bool) error {
	store, err := sqliteRepo.New(":memory:")
	if err != nil {
		return fmt.Errorf("opening in-memory store: %w", err)
	}
	defer store.Close()

	router := server.NewWithStore(config.Config{}, store, newLogger(config.Load().LogLevel)).Handler()

	if asJSON {
		_, err = fmt.Fprintln(w, docgen.JSONRoutesDoc(router))
		return err
	}
	_, err = fmt.Fprintln(w, docgen.MarkdownRoutesDoc(router, docgen.MarkdownOpts{
		ProjectPath: "github.com/sakif/nc-news",
		Intro:       "NC News REST API routes.",
	}))
	return err
}
