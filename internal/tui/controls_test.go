package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/loop"
	"github.com/thruflo/abloop/internal/player"
	"github.com/thruflo/abloop/internal/testutil"
)

func startController(t *testing.T) (context.Context, *loop.Controller, *hotkey.MockSource) {
	t.Helper()

	ctx, cancel := testutil.ContextWithTimeout(t, 5*time.Second)
	src := hotkey.NewMockSource()
	c := loop.New(loop.Options{Player: player.NewMock(), Source: src})
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ctx, c, src
}

func TestApplyControl_ToggleHotkeys(t *testing.T) {
	t.Parallel()

	ctx, c, src := startController(t)

	require.NoError(t, ApplyControl(ctx, c, ControlToggleHotkeys))
	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.False(t, st.HotkeysEnabled)
	assert.Empty(t, src.Registered())

	require.NoError(t, ApplyControl(ctx, c, ControlToggleHotkeys))
	st, err = c.State(ctx)
	require.NoError(t, err)
	assert.True(t, st.HotkeysEnabled)
	assert.Len(t, src.Registered(), len(hotkey.DefaultBindings()))
}

func TestApplyControl_Nudge(t *testing.T) {
	t.Parallel()

	ctx, c, _ := startController(t)

	// Unset markers stay unset.
	require.NoError(t, ApplyControl(ctx, c, ControlMarkerALater))
	require.NoError(t, ApplyControl(ctx, c, ControlMarkerBEarlier))
	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Markers.MarkerA)
	assert.Nil(t, st.Markers.MarkerB)

	require.NoError(t, c.SetMarkerA(ctx, 59.95))
	require.NoError(t, c.SetMarkerB(ctx, 0.05))

	require.NoError(t, ApplyControl(ctx, c, ControlMarkerALater))
	require.NoError(t, ApplyControl(ctx, c, ControlMarkerBEarlier))

	st, err = c.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.Markers.MarkerA)
	require.NotNil(t, st.Markers.MarkerB)
	assert.InDelta(t, 60.05, *st.Markers.MarkerA, 1e-9, "carries into the next minute")
	assert.Equal(t, 0.0, *st.Markers.MarkerB, "clamped at zero")

	require.NoError(t, ApplyControl(ctx, c, ControlMarkerAEarlier))
	require.NoError(t, ApplyControl(ctx, c, ControlMarkerBLater))
	st, err = c.State(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 59.95, *st.Markers.MarkerA, 1e-9)
	assert.InDelta(t, 0.1, *st.Markers.MarkerB, 1e-9)
}

func TestApplyControl_Unknown(t *testing.T) {
	t.Parallel()

	ctx, c, _ := startController(t)
	assert.Error(t, ApplyControl(ctx, c, Control("eject")))
}

func TestRunControls(t *testing.T) {
	t.Parallel()

	ctx, c, _ := startController(t)

	ch := make(chan Control, 2)
	ch <- ControlToggleHotkeys
	ch <- Control("eject")
	close(ch)

	RunControls(ctx, c, ch)

	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.False(t, st.HotkeysEnabled, "unknown controls do not stop the loop")
}
