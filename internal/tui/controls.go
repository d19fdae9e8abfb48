package tui

import (
	"context"
	"fmt"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/loop"
	"github.com/thruflo/abloop/internal/marker"
)

// Control is a session command bound to a reserved key. Controls keep
// working while hotkeys are disabled, so tab can always turn them back on.
type Control string

const (
	ControlToggleHotkeys  Control = "toggle_hotkeys"
	ControlMarkerAEarlier Control = "marker_a_earlier"
	ControlMarkerALater   Control = "marker_a_later"
	ControlMarkerBEarlier Control = "marker_b_earlier"
	ControlMarkerBLater   Control = "marker_b_later"
)

// NudgeStep is how far, in seconds, a nudge control moves a marker.
const NudgeStep = 0.1

// ControlKeys maps each reserved key to its control. Bindings cannot use
// these keys.
var ControlKeys = map[hotkey.Trigger]Control{
	"tab": ControlToggleHotkeys,
	"[":   ControlMarkerAEarlier,
	"]":   ControlMarkerALater,
	"{":   ControlMarkerBEarlier,
	"}":   ControlMarkerBLater,
}

// ApplyControl runs c against ctrl. Nudging an unset marker does nothing.
func ApplyControl(ctx context.Context, ctrl *loop.Controller, c Control) error {
	st, err := ctrl.State(ctx)
	if err != nil {
		return err
	}

	switch c {
	case ControlToggleHotkeys:
		return ctrl.SetHotkeysEnabled(ctx, !st.HotkeysEnabled)
	case ControlMarkerAEarlier:
		return nudge(ctx, st.Markers.MarkerA, -NudgeStep, ctrl.SetMarkerA)
	case ControlMarkerALater:
		return nudge(ctx, st.Markers.MarkerA, NudgeStep, ctrl.SetMarkerA)
	case ControlMarkerBEarlier:
		return nudge(ctx, st.Markers.MarkerB, -NudgeStep, ctrl.SetMarkerB)
	case ControlMarkerBLater:
		return nudge(ctx, st.Markers.MarkerB, NudgeStep, ctrl.SetMarkerB)
	default:
		return fmt.Errorf("unknown control %q", c)
	}
}

// nudge moves a marker by delta, snapped to the centisecond.
func nudge(ctx context.Context, current *float64, delta float64, set func(context.Context, float64) error) error {
	if current == nil {
		return nil
	}
	return set(ctx, marker.TimecodeFromSeconds(*current+delta).TotalSeconds())
}

// RunControls applies controls from ch until ctx is done or ch is closed.
// Failures are logged and do not stop the session.
func RunControls(ctx context.Context, ctrl *loop.Controller, ch <-chan Control) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			if err := ApplyControl(ctx, ctrl, c); err != nil {
				logging.Warn("control failed", "control", string(c), "error", err)
			}
		}
	}
}
