package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultPollInterval  = 100 * time.Millisecond
	DefaultPlayerTimeout = 1500 * time.Millisecond
	DefaultLogLevel      = "warn"

	// Loop-back overshoot is bounded by one poll interval.
	MinPollInterval = 10 * time.Millisecond
	MaxPollInterval = time.Second

	MaxPlayerTimeout = 10 * time.Second
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		Player: Player{
			App:     "Music",
			Timeout: DefaultPlayerTimeout,
		},
		Hotkeys: Hotkeys{
			Enabled: true,
		},
		LogLevel: DefaultLogLevel,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file location under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, ".abloop", "config.yaml")
}

// LoadConfig reads and parses .abloop/config.yaml from the given base path,
// usually the user's home directory.
// If the file doesn't exist, returns default config.
func LoadConfig(basePath string) (*Config, error) {
	return LoadConfigFile(Path(basePath), true)
}

// LoadConfigFile reads and parses the config file at path.
// A missing file yields the default config when optional is true.
// Applies defaults for any missing fields.
func LoadConfigFile(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && optional {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.PollInterval < MinPollInterval || cfg.PollInterval > MaxPollInterval {
		return ValidationError{
			Field:   "poll_interval",
			Message: fmt.Sprintf("must be between %s and %s", MinPollInterval, MaxPollInterval),
		}
	}
	if cfg.Player.App == "" {
		return ValidationError{Field: "player.app", Message: "required field is empty"}
	}
	if cfg.Player.Timeout <= 0 || cfg.Player.Timeout > MaxPlayerTimeout {
		return ValidationError{
			Field:   "player.timeout",
			Message: fmt.Sprintf("must be positive and at most %s", MaxPlayerTimeout),
		}
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return ValidationError{Field: "log_level", Message: err.Error()}
	}

	for id, key := range cfg.Hotkeys.Triggers {
		if _, ok := hotkey.DefaultTriggers[id]; !ok {
			return ValidationError{Field: "hotkeys.triggers." + id, Message: "not a default binding id"}
		}
		if key == "" {
			return ValidationError{Field: "hotkeys.triggers." + id, Message: "key is empty"}
		}
	}

	for i, b := range cfg.Hotkeys.Extra {
		field := fmt.Sprintf("hotkeys.extra[%d]", i)
		action, err := hotkey.ParseAction(b.Action)
		if err != nil {
			return ValidationError{Field: field + ".action", Message: err.Error()}
		}
		if b.Seconds < 0 {
			return ValidationError{Field: field + ".seconds", Message: "must not be negative"}
		}
		if b.Seconds > 0 && !action.IsSeek() {
			return ValidationError{Field: field + ".seconds", Message: "only rewind and forward take seconds"}
		}
	}

	return nil
}

// Level returns the parsed log level. Invalid levels fall back to warn;
// ValidateConfig rejects them on load.
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// TriggerOverrides returns the configured keys for default bindings.
func (c *Config) TriggerOverrides() map[string]hotkey.Trigger {
	out := make(map[string]hotkey.Trigger, len(c.Hotkeys.Triggers))
	for id, key := range c.Hotkeys.Triggers {
		out[id] = hotkey.Trigger(key)
	}
	return out
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
