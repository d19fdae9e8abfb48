package testutil

// SampleConfigYAML sets every config field.
const SampleConfigYAML = `poll_interval: 50ms
player:
  app: Spotify
  timeout: 2s
hotkeys:
  enabled: false
  triggers:
    setMarkerA: "1"
    setMarkerB: "2"
  extra:
    - action: rewind
      key: z
      seconds: 10
    - action: toggle-loop
      key: " "
log_level: debug
log_file: /tmp/abloop.log
`

// PartialConfigYAML sets only a few fields. The rest keep their defaults.
const PartialConfigYAML = `player:
  app: Spotify
log_level: info
`

// InvalidConfigYAML is not valid YAML.
const InvalidConfigYAML = `player:
  app: [unterminated
`

// OutOfRangeConfigYAML parses but fails validation.
const OutOfRangeConfigYAML = `poll_interval: 1ms
`

// Float returns a pointer to v, for building expected optional positions.
func Float(v float64) *float64 {
	return &v
}
