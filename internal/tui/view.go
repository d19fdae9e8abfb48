package tui

import (
	"fmt"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/loop"
	"github.com/thruflo/abloop/internal/marker"
)

// MinWidth is the narrowest the status view renders.
const MinWidth = 36

// StatusView renders the controller state: markers, loop status and the
// binding list with the last triggered binding highlighted.
type StatusView struct {
	// App is the controlled player application, shown in the title.
	App string
}

// Render renders the view as box lines of the given width.
func (v *StatusView) Render(st loop.State, width int) []string {
	width = max(width, MinWidth)
	inner := width - 4

	hotkeys := Style("keys on", FgGreen)
	if !st.HotkeysEnabled {
		hotkeys = Style("keys off", FgYellow)
	}
	title := Style("abloop", Bold)
	if v.App != "" {
		title += " " + Style(v.App, Dim)
	}

	content := []string{
		SplitColumns(title, hotkeys, inner),
		Separator,
		fmt.Sprintf("A %s   B %s", formatMarker(st.Markers.MarkerA), formatMarker(st.Markers.MarkerB)),
		loopLine(st.Markers),
		Separator,
	}
	for _, b := range st.Bindings {
		line := PadOrTruncate(fmt.Sprintf("%-8s %s", keyLabel(b.Trigger), bindingLabel(b)), inner)
		if b.ID == st.LastTriggered {
			line = Style(line, Reverse)
		}
		content = append(content, line)
	}
	content = append(content, Separator, Style("[tab] keys  []{} nudge  [q]uit", Dim))

	return BoxWithContent(width, content)
}

func formatMarker(v *float64) string {
	if v == nil {
		return Style("--:--.--", Dim)
	}
	return marker.FormatSeconds(*v)
}

func loopLine(m marker.State) string {
	if !m.HasMarkers() {
		return Style("loop off", Dim)
	}
	span := fmt.Sprintf("%s → %s", marker.FormatSeconds(*m.LoopStart), marker.FormatSeconds(*m.LoopEnd))
	if m.Looping {
		return Style("looping", FgGreen, Bold) + " " + span
	}
	return "loop ready " + span
}

func keyLabel(t hotkey.Trigger) string {
	if t == "" {
		return "[-]"
	}
	return "[" + string(t) + "]"
}

func bindingLabel(b hotkey.Binding) string {
	if b.Action.IsSeek() {
		return fmt.Sprintf("%s %.1fs", b.Action.Title(), hotkey.ClampMagnitude(b.Magnitude))
	}
	return b.Action.Title()
}
