package loop

import (
	"context"
	"time"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/marker"
)

// EventType identifies what changed.
type EventType string

const (
	// EventSnapshot is the first event on every subscription.
	EventSnapshot EventType = "snapshot"
	// EventMarkers is sent when markers or the looping flag change.
	EventMarkers EventType = "markers"
	// EventBindings is sent when bindings are added, removed or edited.
	EventBindings EventType = "bindings"
	// EventHotkeys is sent when hotkeys are enabled or disabled.
	EventHotkeys EventType = "hotkeys"
	// EventTriggered is sent when LastTriggered is set or cleared.
	EventTriggered EventType = "triggered"
	// EventLoopBack is sent when a loop-back seek is issued.
	EventLoopBack EventType = "loop_back"
)

// Stats counts what the controller has done. Failures are never returned to
// callers, so these counters are the way to observe them besides the log.
type Stats struct {
	Dispatched      int `json:"dispatched"`
	UnknownTriggers int `json:"unknown_triggers"`
	Polls           int `json:"polls"`
	LoopBacks       int `json:"loop_backs"`
	PlayerFailures  int `json:"player_failures"`
}

// State is a copy of everything the controller owns.
type State struct {
	Markers        marker.State     `json:"markers"`
	Bindings       []hotkey.Binding `json:"bindings"`
	HotkeysEnabled bool             `json:"hotkeys_enabled"`
	LastTriggered  string           `json:"last_triggered,omitempty"`
	Stats          Stats            `json:"stats"`
}

// Event carries the full state after a change, so a subscriber that missed
// events only needs the latest one.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	State     State     `json:"state"`
}

func (c *Controller) snapshot() State {
	return State{
		Markers:        c.markers.Snapshot(),
		Bindings:       c.set.Bindings(),
		HotkeysEnabled: c.set.Enabled(),
		LastTriggered:  c.lastTriggered,
		Stats:          c.stats,
	}
}

// publish sends an event to every subscriber without blocking. A subscriber
// whose buffer is full misses the event.
func (c *Controller) publish(t EventType) {
	if len(c.subscribers) == 0 {
		return
	}
	ev := Event{Type: t, Timestamp: time.Now().UTC(), State: c.snapshot()}
	for id, ch := range c.subscribers {
		select {
		case ch <- ev:
		default:
			logging.Debug("subscriber lagging, event dropped", "subscriber", id, "type", string(t))
		}
	}
}

// Subscribe returns a channel of state-change events, starting with a
// snapshot of the current state. The channel is closed by cancel or when
// Run returns.
func (c *Controller) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	ch := make(chan Event, 32)
	var id int
	err := c.do(ctx, func() {
		id = c.nextSubID
		c.nextSubID++
		c.subscribers[id] = ch
		ch <- Event{Type: EventSnapshot, Timestamp: time.Now().UTC(), State: c.snapshot()}
	})
	if err != nil {
		return nil, nil, err
	}

	cancel := func() {
		c.post(func() {
			if sub, ok := c.subscribers[id]; ok {
				close(sub)
				delete(c.subscribers, id)
			}
		})
	}
	return ch, cancel, nil
}

// State returns a copy of the current state.
func (c *Controller) State(ctx context.Context) (State, error) {
	var st State
	err := c.do(ctx, func() { st = c.snapshot() })
	return st, err
}

// Dispatch runs the effect of binding id as if its trigger had fired.
// Unknown ids are ignored.
func (c *Controller) Dispatch(ctx context.Context, id string) error {
	return c.do(ctx, func() { c.dispatch(id) })
}

// AddBinding appends a binding for action with a fresh id and the default
// magnitude, registering trigger when it is not empty.
func (c *Controller) AddBinding(ctx context.Context, action hotkey.Action, trigger hotkey.Trigger) (hotkey.Binding, error) {
	var b hotkey.Binding
	err := c.do(ctx, func() {
		b = c.set.AddBinding(action, trigger)
		c.publish(EventBindings)
	})
	return b, err
}

// RemoveBinding unregisters and removes a binding. Unknown ids are ignored.
func (c *Controller) RemoveBinding(ctx context.Context, id string) error {
	return c.do(ctx, func() {
		if c.set.RemoveBinding(id) {
			c.publish(EventBindings)
		}
	})
}

// SetMagnitude changes the seek magnitude of a rewind or forward binding.
func (c *Controller) SetMagnitude(ctx context.Context, id string, seconds float64) error {
	return c.do(ctx, func() {
		if c.set.SetMagnitude(id, seconds) {
			c.publish(EventBindings)
		}
	})
}

// SetTrigger rebinds a binding to another key.
func (c *Controller) SetTrigger(ctx context.Context, id string, trigger hotkey.Trigger) error {
	return c.do(ctx, func() {
		if c.set.SetTrigger(id, trigger) {
			c.publish(EventBindings)
		}
	})
}

// SetHotkeysEnabled registers or unregisters every binding with the source.
// The binding list is kept either way.
func (c *Controller) SetHotkeysEnabled(ctx context.Context, enabled bool) error {
	return c.do(ctx, func() {
		c.set.SetEnabled(enabled)
		c.publish(EventHotkeys)
	})
}

// SetMarkerA sets marker A to seconds, for callers editing markers directly.
func (c *Controller) SetMarkerA(ctx context.Context, seconds float64) error {
	return c.do(ctx, func() {
		c.markers.SetMarkerA(max(0, seconds))
		c.publish(EventMarkers)
	})
}

// SetMarkerB sets marker B to seconds, for callers editing markers directly.
func (c *Controller) SetMarkerB(ctx context.Context, seconds float64) error {
	return c.do(ctx, func() {
		c.markers.SetMarkerB(max(0, seconds))
		c.publish(EventMarkers)
	})
}

// ToggleLoop toggles looping. It does nothing unless both markers are set.
func (c *Controller) ToggleLoop(ctx context.Context) error {
	return c.do(ctx, func() {
		c.markers.ToggleLoop()
		c.publish(EventMarkers)
	})
}

// ClearMarkers clears both markers and stops looping.
func (c *Controller) ClearMarkers(ctx context.Context) error {
	return c.do(ctx, func() {
		c.markers.ClearMarkers()
		c.publish(EventMarkers)
	})
}
