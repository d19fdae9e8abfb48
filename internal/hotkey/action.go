// Package hotkey defines hotkey bindings, the action vocabulary they map to,
// and the set of bindings kept in sync with a trigger Source.
package hotkey

import (
	"fmt"
	"strings"
)

// Action identifies what a binding does when its trigger fires.
type Action int

const (
	ActionRewind       Action = iota + 1 // Seek backwards by the binding magnitude
	ActionForward                        // Seek forwards by the binding magnitude
	ActionSetMarkerA                     // Set marker A at the current position
	ActionSetMarkerB                     // Set marker B at the current position
	ActionToggleLoop                     // Toggle the A-B loop
	ActionClearMarkers                   // Clear both markers
)

// Actions lists every action in display order.
var Actions = []Action{
	ActionRewind,
	ActionForward,
	ActionSetMarkerA,
	ActionSetMarkerB,
	ActionToggleLoop,
	ActionClearMarkers,
}

// String returns the config/CLI name of the action.
func (a Action) String() string {
	switch a {
	case ActionRewind:
		return "rewind"
	case ActionForward:
		return "forward"
	case ActionSetMarkerA:
		return "set-marker-a"
	case ActionSetMarkerB:
		return "set-marker-b"
	case ActionToggleLoop:
		return "toggle-loop"
	case ActionClearMarkers:
		return "clear-markers"
	default:
		return "unknown"
	}
}

// Title returns a human-readable label for the action.
func (a Action) Title() string {
	switch a {
	case ActionRewind:
		return "Rewind"
	case ActionForward:
		return "Forward"
	case ActionSetMarkerA:
		return "Set Marker A"
	case ActionSetMarkerB:
		return "Set Marker B"
	case ActionToggleLoop:
		return "Toggle A-B Loop"
	case ActionClearMarkers:
		return "Clear Markers"
	default:
		return "Unknown"
	}
}

// IsSeek reports whether the action seeks and therefore uses a magnitude.
func (a Action) IsSeek() bool {
	return a == ActionRewind || a == ActionForward
}

// ParseAction parses an action name as produced by String.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
