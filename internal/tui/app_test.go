package tui

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/abloop/internal/loop"
)

func newTestApp(t *testing.T, bell bool) (*App, *bytes.Buffer) {
	t.Helper()

	in, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	t.Cleanup(func() { in.Close() })

	var out bytes.Buffer
	return NewApp(NewTerminalFrom(in, &out), AppOptions{Application: "Music", Bell: bell}), &out
}

func TestApp_Render(t *testing.T) {
	t.Parallel()

	app, out := newTestApp(t, false)
	st := sampleState()

	app.Render(st)

	assert.True(t, strings.HasPrefix(out.String(), ClearScreen+CursorHome+CursorHide))
	assert.Contains(t, out.String(), "Music")
	assert.Contains(t, out.String(), "\r\n")
	assert.Equal(t, st, app.State())
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	app, out := newTestApp(t, true)

	events := make(chan loop.Event, 3)
	events <- loop.Event{Type: loop.EventSnapshot, State: sampleState()}
	looped := sampleState()
	looped.Stats.LoopBacks = 1
	events <- loop.Event{Type: loop.EventLoopBack, State: looped}
	close(events)

	require.NoError(t, app.Run(context.Background(), events))

	assert.Equal(t, 1, strings.Count(out.String(), Bell))
	assert.True(t, strings.HasSuffix(out.String(), CursorShow))
	assert.Equal(t, 1, app.State().Stats.LoopBacks)
}

func TestApp_RunWithoutBell(t *testing.T) {
	t.Parallel()

	app, out := newTestApp(t, false)

	events := make(chan loop.Event, 1)
	events <- loop.Event{Type: loop.EventLoopBack, State: sampleState()}
	close(events)

	require.NoError(t, app.Run(context.Background(), events))
	assert.NotContains(t, out.String(), Bell)
}

func TestApp_RunStopsOnContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, NewNopApp().Run(ctx, make(chan loop.Event)))
}
