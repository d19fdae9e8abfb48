package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/config"
	"github.com/thruflo/abloop/internal/player"
	"github.com/thruflo/abloop/internal/testutil"
)

// withConfigHome points config loading at a temp home containing yaml and
// resets the global flags when the test ends.
func withConfigHome(t *testing.T, yaml string) string {
	t.Helper()
	configHome = testutil.SetupTestHome(t, yaml)
	t.Cleanup(func() {
		configHome = ""
		configPath = ""
		verbose = false
	})
	return configHome
}

// withMockPlayer replaces the AppleScript player for the test.
func withMockPlayer(t *testing.T) *player.Mock {
	t.Helper()
	mock := player.NewMock()
	old := newPlayer
	newPlayer = func(*config.Config) player.Player { return mock }
	t.Cleanup(func() { newPlayer = old })
	return mock
}

// runCommand runs fn for cmd with its output captured.
func runCommand(cmd *cobra.Command, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	defer cmd.SetOut(nil)

	err := fn(cmd, args)
	return buf.String(), err
}
