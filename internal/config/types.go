package config

import "time"

// Config represents the ~/.abloop/config.yaml file.
type Config struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Player       Player        `yaml:"player"`
	Hotkeys      Hotkeys       `yaml:"hotkeys"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file,omitempty"`
}

// Player configures the external media player.
type Player struct {
	App     string        `yaml:"app"`     // Scriptable application name
	Timeout time.Duration `yaml:"timeout"` // Bound on each player call
}

// Hotkeys configures the binding set created at startup.
type Hotkeys struct {
	Enabled  bool              `yaml:"enabled"`
	Triggers map[string]string `yaml:"triggers,omitempty"` // default binding id -> key
	Extra    []Binding         `yaml:"extra,omitempty"`
}

// Binding is an additional binding created after the defaults.
type Binding struct {
	Action  string  `yaml:"action"`
	Key     string  `yaml:"key"`
	Seconds float64 `yaml:"seconds,omitempty"` // rewind/forward only
}
