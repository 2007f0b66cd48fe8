package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/digipet/pkg/api"
	"github.com/cbodonnell/digipet/pkg/game"
	"github.com/cbodonnell/digipet/pkg/repositories"
	"github.com/cbodonnell/digipet/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestActionCommands(t *testing.T) {
	server := httptest.NewServer(api.NewRouter(api.NewAPIServerOptions{
		AllowOrigin: "*",
		GameManager: game.NewGameManager(game.NewGameManagerOptions{
			StateManager: state.NewInMemoryStateManager(),
		}),
		Repository: repositories.NewInMemoryRepository(),
	}))
	t.Cleanup(server.Close)

	out, err := execute(t, "status", "--server-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "don't have")

	out, err = execute(t, "hatch", "--server-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "hatched")
	assert.Contains(t, out, "happiness:   50")

	out, err = execute(t, "feed", "--server-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "nutrition:   60")
	assert.Contains(t, out, "discipline:  40")

	out, err = execute(t, "history", "--server-url", server.URL)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digipet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8081\ndatabase_url: sqlite://from-file.db\n"), 0o600))
	t.Setenv("DIGIPET_DATABASE_URL", "sqlite://from-env.db")

	require.NoError(t, serveCmd.Flags().Parse([]string{"--config", path, "--allow-origin", "http://localhost:3000"}))
	t.Cleanup(func() {
		serveOpts.configFile = ""
		serveOpts.allowOrigin = "*"
		serveCmd.Flags().Lookup("config").Changed = false
		serveCmd.Flags().Lookup("allow-origin").Changed = false
	})

	cfg, err := loadConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite://from-env.db", cfg.DatabaseURL)
	assert.Equal(t, "http://localhost:3000", cfg.AllowOrigin)
}
