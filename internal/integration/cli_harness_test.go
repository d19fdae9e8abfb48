//go:build e2e

// cli_harness_test.go provides a test harness for E2E testing of the abloop CLI.
//
// The CLIHarness builds the abloop binary and runs it with HOME pointed at an
// isolated directory, so ~/.abloop/config.yaml is under the test's control.
package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/abloop/internal/testutil"
)

// CLIHarness manages an abloop binary for E2E testing.
type CLIHarness struct {
	// BinaryPath is the path to the built abloop binary.
	BinaryPath string

	// Home is the HOME directory for every command.
	Home string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the abloop binary and creates a home directory
// holding configYAML, if not empty.
func NewCLIHarness(t *testing.T, configYAML string) *CLIHarness {
	t.Helper()

	root := findModuleRoot(t)
	binaryPath := filepath.Join(t.TempDir(), "abloop")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/abloop")
	cmd.Dir = root
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build abloop binary: %s", output)

	return &CLIHarness{
		BinaryPath: binaryPath,
		Home:       testutil.SetupTestHome(t, configYAML),
		t:          t,
	}
}

// Run executes an abloop command with a 30 second timeout. Stdin is empty,
// so commands that need a terminal fail.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.Home
	cmd.Env = h.env()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CLIResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}
	return result
}

func (h *CLIHarness) env() []string {
	env := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") {
			env = append(env, e)
		}
	}
	return append(env, "HOME="+h.Home)
}

// RequireSuccess fails the test if the command failed.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msg string) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command succeeded.
func (h *CLIHarness) RequireFailure(result *CLIResult, msg string) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}

// findModuleRoot walks up from the working directory to the go.mod.
func findModuleRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found")
		dir = parent
	}
}
