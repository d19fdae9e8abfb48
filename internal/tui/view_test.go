package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/loop"
	"github.com/thruflo/abloop/internal/marker"
	"github.com/thruflo/abloop/internal/testutil"
)

func sampleState() loop.State {
	return loop.State{
		Markers:        marker.State{},
		Bindings:       hotkey.DefaultBindings(),
		HotkeysEnabled: true,
	}
}

func TestStatusView_Layout(t *testing.T) {
	t.Parallel()

	v := &StatusView{App: "Music"}
	lines := v.Render(sampleState(), 48)

	// title, rule, markers, loop, rule, 8 bindings, rule, footer, plus borders
	require.Len(t, lines, 17)
	for i, line := range lines {
		assert.Equal(t, 48, VisibleWidth(line), "line %d width", i)
	}
	assert.Contains(t, lines[1], "abloop")
	assert.Contains(t, lines[1], "Music")
	assert.Contains(t, lines[1], "keys on")
	assert.Contains(t, lines[3], "--:--.--")
	assert.Contains(t, lines[4], "loop off")
	assert.Contains(t, lines[6], "[,]")
	assert.Contains(t, lines[6], "Rewind 2.0s")
	assert.Contains(t, lines[7], "Rewind 5.0s")
	assert.Contains(t, lines[13], "Clear Markers")
}

func TestStatusView_Markers(t *testing.T) {
	t.Parallel()

	st := sampleState()
	st.Markers = marker.State{
		MarkerA:   testutil.Float(30),
		MarkerB:   testutil.Float(10),
		LoopStart: testutil.Float(10),
		LoopEnd:   testutil.Float(30),
	}

	v := &StatusView{}
	lines := v.Render(st, 48)
	assert.Contains(t, lines[3], "A 00:30.00   B 00:10.00")
	assert.Contains(t, lines[4], "loop ready 00:10.00 → 00:30.00")

	st.Markers.Looping = true
	lines = v.Render(st, 48)
	assert.Contains(t, lines[4], Style("looping", FgGreen, Bold))
}

func TestStatusView_HighlightAndDisabled(t *testing.T) {
	t.Parallel()

	st := sampleState()
	st.LastTriggered = hotkey.IDToggleABLoop
	st.HotkeysEnabled = false

	lines := (&StatusView{}).Render(st, 48)

	assert.Contains(t, lines[1], "keys off")
	var highlighted []string
	for _, line := range lines {
		if strings.Contains(line, Reverse) {
			highlighted = append(highlighted, line)
		}
	}
	require.Len(t, highlighted, 1)
	assert.Contains(t, highlighted[0], "Toggle A-B Loop")
}

func TestStatusView_UnboundAndNarrow(t *testing.T) {
	t.Parallel()

	st := sampleState()
	st.Bindings = append(st.Bindings, hotkey.NewBinding(hotkey.ActionForward, ""))

	lines := (&StatusView{}).Render(st, 10)
	require.NotEmpty(t, lines)
	assert.Equal(t, MinWidth, VisibleWidth(lines[0]))
	assert.Contains(t, lines[len(lines)-4], "[-]")
	assert.Contains(t, lines[len(lines)-4], "Forward 5.0s")
}
