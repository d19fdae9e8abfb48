package hotkey

import (
	"math"

	"github.com/google/uuid"
)

const (
	// DefaultMagnitude is the seek magnitude, in seconds, for new bindings.
	DefaultMagnitude = 5.0
	// MinMagnitude is the smallest accepted seek magnitude.
	MinMagnitude = 0.1
)

// Trigger names the key combination a binding is registered under.
// Its format is owned by the Source; the terminal source uses single key
// names such as "a", "<" or "left".
type Trigger string

// Binding associates a trigger with an action.
type Binding struct {
	ID        string  `json:"id"`
	Trigger   Trigger `json:"trigger"`
	Action    Action  `json:"action"`
	Magnitude float64 `json:"magnitude"` // Seconds, rewind/forward only
}

// NewBinding creates a binding with a fresh id and the default magnitude.
func NewBinding(action Action, trigger Trigger) Binding {
	return Binding{
		ID:        "action_" + uuid.NewString(),
		Trigger:   trigger,
		Action:    action,
		Magnitude: DefaultMagnitude,
	}
}

// Offset returns the signed seek offset in seconds: negative for rewind,
// positive for forward and zero for everything else.
func (b Binding) Offset() float64 {
	switch b.Action {
	case ActionRewind:
		return -ClampMagnitude(b.Magnitude)
	case ActionForward:
		return ClampMagnitude(b.Magnitude)
	default:
		return 0
	}
}

// ClampMagnitude raises magnitudes below MinMagnitude to MinMagnitude.
func ClampMagnitude(seconds float64) float64 {
	if seconds < MinMagnitude || math.IsNaN(seconds) {
		return MinMagnitude
	}
	return seconds
}

// Ids of the seeded default bindings.
const (
	IDRewind2      = "rewind2"
	IDRewind5      = "rewind5"
	IDForward2     = "forward2"
	IDForward5     = "forward5"
	IDSetMarkerA   = "setMarkerA"
	IDSetMarkerB   = "setMarkerB"
	IDToggleABLoop = "toggleABLoop"
	IDClearMarkers = "clearMarkers"
)

// DefaultTriggers maps each default binding id to its terminal key.
// Shifted keys carry the larger seek magnitude.
var DefaultTriggers = map[string]Trigger{
	IDRewind2:      ",",
	IDRewind5:      "<",
	IDForward2:     ".",
	IDForward5:     ">",
	IDSetMarkerA:   "a",
	IDSetMarkerB:   "b",
	IDToggleABLoop: "l",
	IDClearMarkers: "c",
}

// DefaultBindings returns the seeded binding set. Seek bindings come in a
// 2 second and a 5 second variant.
func DefaultBindings() []Binding {
	return []Binding{
		{ID: IDRewind2, Trigger: DefaultTriggers[IDRewind2], Action: ActionRewind, Magnitude: 2.0},
		{ID: IDRewind5, Trigger: DefaultTriggers[IDRewind5], Action: ActionRewind, Magnitude: 5.0},
		{ID: IDForward2, Trigger: DefaultTriggers[IDForward2], Action: ActionForward, Magnitude: 2.0},
		{ID: IDForward5, Trigger: DefaultTriggers[IDForward5], Action: ActionForward, Magnitude: 5.0},
		{ID: IDSetMarkerA, Trigger: DefaultTriggers[IDSetMarkerA], Action: ActionSetMarkerA, Magnitude: DefaultMagnitude},
		{ID: IDSetMarkerB, Trigger: DefaultTriggers[IDSetMarkerB], Action: ActionSetMarkerB, Magnitude: DefaultMagnitude},
		{ID: IDToggleABLoop, Trigger: DefaultTriggers[IDToggleABLoop], Action: ActionToggleLoop, Magnitude: DefaultMagnitude},
		{ID: IDClearMarkers, Trigger: DefaultTriggers[IDClearMarkers], Action: ActionClearMarkers, Magnitude: DefaultMagnitude},
	}
}
