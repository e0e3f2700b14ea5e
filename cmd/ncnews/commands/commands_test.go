package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoutes_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf, false))

	out := buf.String()
	assert.Contains(t, out, "NC News REST API routes.")
	assert.Contains(t, out, "/articles")
	assert.Contains(t, out, "{comment_id}")
}

func TestPrintRoutes_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf, true))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "router")
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("DB_PATH", "from-env.db")
	t.Setenv("LOG_LEVEL", "info")

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.Flags().Parse([]string{"--db-path", "from-flag.db", "--log-level", "debug"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_BadLogLevel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "shouty"}))

	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "seed", "routes"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}
