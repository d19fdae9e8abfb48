package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/abloop/internal/config"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "abloop", rootCmd.Use)
	assert.Equal(t, Version, rootCmd.Version)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "bindings", "player", "timecode"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestLoadConfig_Home(t *testing.T) {
	withConfigHome(t, testutil.PartialConfigYAML)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Spotify", cfg.Player.App)
	assert.Equal(t, config.DefaultPollInterval, cfg.PollInterval)
}

func TestLoadConfig_MissingHomeFileUsesDefaults(t *testing.T) {
	withConfigHome(t, "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	withConfigHome(t, "")

	dir := t.TempDir()
	testutil.WriteTestFile(t, dir, "custom.yaml", []byte("poll_interval: 250ms\n"))
	configPath = filepath.Join(dir, "custom.yaml")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)

	configPath = filepath.Join(dir, "missing.yaml")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	withConfigHome(t, testutil.OutOfRangeConfigYAML)

	_, err := loadConfig()
	require.Error(t, err)
	assert.True(t, config.IsValidationError(err))
}

func TestSetupLogging_File(t *testing.T) {
	withConfigHome(t, "")
	defer logging.SetLevel(logging.LevelWarn)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "info"
	cfg.LogFile = filepath.Join(t.TempDir(), "abloop.log")

	closeLog, err := setupLogging(&cfg)
	require.NoError(t, err)
	logging.Info("controller started", "player", "Music")
	logging.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: controller started | player=Music")
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestSetupLogging_VerboseAndBadPath(t *testing.T) {
	withConfigHome(t, "")
	defer logging.SetLevel(logging.LevelWarn)

	verbose = true
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing-dir", "abloop.log")

	_, err := setupLogging(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}
