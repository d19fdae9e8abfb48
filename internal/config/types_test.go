package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLMarshal(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PollInterval: 100 * time.Millisecond,
		Player:       Player{App: "Music", Timeout: 1500 * time.Millisecond},
		Hotkeys: Hotkeys{
			Enabled: true,
			Extra:   []Binding{{Action: "forward", Key: "f", Seconds: 10}},
		},
		LogLevel: "warn",
	}

	got, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, `poll_interval: 100ms
player:
    app: Music
    timeout: 1.5s
hotkeys:
    enabled: true
    extra:
        - action: forward
          key: f
          seconds: 10
log_level: warn
`, string(got))
}

func TestConfig_YAMLRoundTripDefaults(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	var got Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, want, got)
	assert.NoError(t, ValidateConfig(&got))
}
