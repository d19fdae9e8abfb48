package player

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultApplication is the scriptable player controlled by default.
const DefaultApplication = "Music"

// ScriptRunner runs an AppleScript source and returns its trimmed output.
// This abstraction allows testing without osascript.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSAScriptRunner runs scripts with the osascript command.
type OSAScriptRunner struct{}

// Run executes script via `osascript -e`.
func (OSAScriptRunner) Run(ctx context.Context, script string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("osascript: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("osascript failed: %s", msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// AppleScript controls a scriptable macOS player (Music by default).
type AppleScript struct {
	app    string
	runner ScriptRunner
}

// NewAppleScript creates an AppleScript player for app. A nil runner uses
// OSAScriptRunner and an empty app uses DefaultApplication.
func NewAppleScript(app string, runner ScriptRunner) *AppleScript {
	if app == "" {
		app = DefaultApplication
	}
	if runner == nil {
		runner = OSAScriptRunner{}
	}
	return &AppleScript{app: app, runner: runner}
}

// Application returns the controlled application name.
func (a *AppleScript) Application() string {
	return a.app
}

// Position returns the player position.
func (a *AppleScript) Position(ctx context.Context) (float64, error) {
	return a.number(ctx, "return player position")
}

// SetPosition sets the player position.
func (a *AppleScript) SetPosition(ctx context.Context, seconds float64) error {
	body := "set player position to " + strconv.FormatFloat(seconds, 'f', 3, 64)
	if _, err := a.run(ctx, body); err != nil {
		return err
	}
	return nil
}

// Seek moves the position by offset seconds.
func (a *AppleScript) Seek(ctx context.Context, offset float64) error {
	return SeekBy(ctx, a, offset)
}

// IsPlaying reports whether the player state is "playing".
func (a *AppleScript) IsPlaying(ctx context.Context) (bool, error) {
	out, err := a.run(ctx, "return player state is playing")
	if err != nil {
		return false, err
	}
	return out == "true", nil
}

// Duration returns the duration of the current track.
func (a *AppleScript) Duration(ctx context.Context) (float64, error) {
	return a.number(ctx, "return duration of current track")
}

func (a *AppleScript) run(ctx context.Context, body string) (string, error) {
	script := fmt.Sprintf("tell application %q\n%s\nend tell", a.app, body)
	out, err := a.runner.Run(ctx, script)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, a.app, err)
	}
	return out, nil
}

func (a *AppleScript) number(ctx context.Context, body string) (float64, error) {
	out, err := a.run(ctx, body)
	if err != nil {
		return 0, err
	}
	v, err := parseNumber(out)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnavailable, a.app, err)
	}
	return v, nil
}

// parseNumber parses AppleScript numeric output. Locales with a decimal
// comma print "12,5".
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty output")
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected output %q", s)
	}
	return v, nil
}
