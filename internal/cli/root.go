package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/config"
	"github.com/thruflo/abloop/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	verbose    bool
)

// configHome is the directory holding .abloop/config.yaml.
// It can be overridden in tests.
var configHome string

var rootCmd = &cobra.Command{
	Use:   "abloop",
	Short: "Keyboard-driven A-B looping for a desktop media player",
	Long: `abloop controls a running media player from the terminal. Mark the
start and end of a passage, toggle looping, and abloop keeps seeking back to
the start whenever playback reaches the end. Seek keys nudge playback back
and forth by a few seconds.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("abloop version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.abloop/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the --config file when given, otherwise the optional
// config in the home directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFile(configPath, false)
	}

	home := configHome
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find home directory: %w", err)
		}
	}
	return config.LoadConfig(home)
}

// setupLogging applies the configured level and output to the default
// logger. The returned func closes the log file, if one was opened.
func setupLogging(cfg *config.Config) (func(), error) {
	level := cfg.Level()
	if verbose {
		level = logging.LevelDebug
	}
	logging.SetLevel(level)

	if cfg.LogFile == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.SetOutput(log.New(f, "", log.LstdFlags))
	return func() {
		logging.SetOutput(log.New(os.Stderr, "", log.LstdFlags))
		f.Close()
	}, nil
}
