package hotkey

import "github.com/thruflo/abloop/internal/logging"

// Set is the ordered list of bindings, kept in sync with a Source.
// While disabled, bindings stay in the list but none is registered.
// Set is not safe for concurrent use.
type Set struct {
	source   Source
	bindings []Binding
	enabled  bool
}

// NewSet creates an empty, enabled Set.
func NewSet(source Source) *Set {
	return &Set{
		source:  source,
		enabled: true,
	}
}

// RegisterDefaultBindings appends DefaultBindings, replacing the trigger of
// any id present in overrides, and registers them.
func (s *Set) RegisterDefaultBindings(overrides map[string]Trigger) {
	for _, b := range DefaultBindings() {
		if trigger, ok := overrides[b.ID]; ok {
			b.Trigger = trigger
		}
		s.bindings = append(s.bindings, b)
		s.register(b)
	}
}

// AddBinding appends a new binding with a fresh id and DefaultMagnitude.
// An empty trigger leaves the binding unregistered until SetTrigger.
func (s *Set) AddBinding(action Action, trigger Trigger) Binding {
	b := NewBinding(action, trigger)
	s.bindings = append(s.bindings, b)
	s.register(b)
	return b
}

// RemoveBinding unregisters and removes the binding with the given id.
// It reports whether a binding was removed.
func (s *Set) RemoveBinding(id string) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.unregister(id)
	s.bindings = append(s.bindings[:idx], s.bindings[idx+1:]...)
	return true
}

// Lookup returns the binding with the given id.
func (s *Set) Lookup(id string) (Binding, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Binding{}, false
	}
	return s.bindings[idx], true
}

// Bindings returns a copy of all bindings in order.
func (s *Set) Bindings() []Binding {
	return append([]Binding(nil), s.bindings...)
}

// Len returns the number of bindings.
func (s *Set) Len() int {
	return len(s.bindings)
}

// SetMagnitude changes the seek magnitude of a rewind or forward binding,
// clamped to MinMagnitude. It reports whether the binding was changed.
func (s *Set) SetMagnitude(id string, seconds float64) bool {
	idx := s.index(id)
	if idx < 0 || !s.bindings[idx].Action.IsSeek() {
		return false
	}
	s.bindings[idx].Magnitude = ClampMagnitude(seconds)
	return true
}

// SetTrigger rebinds id to trigger and re-registers it.
func (s *Set) SetTrigger(id string, trigger Trigger) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	if s.bindings[idx].Trigger != "" {
		s.unregister(id)
	}
	s.bindings[idx].Trigger = trigger
	s.register(s.bindings[idx])
	return true
}

// Enabled reports whether bindings are registered with the source.
func (s *Set) Enabled() bool {
	return s.enabled
}

// SetEnabled registers or unregisters every binding without changing the
// list. Setting the current value again re-synchronizes the source.
func (s *Set) SetEnabled(enabled bool) {
	if enabled {
		s.enabled = true
		for _, b := range s.bindings {
			s.register(b)
		}
		return
	}

	for _, b := range s.bindings {
		s.unregister(b.ID)
	}
	s.enabled = false
}

func (s *Set) index(id string) int {
	for i, b := range s.bindings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Set) register(b Binding) {
	if !s.enabled || b.Trigger == "" {
		return
	}
	if err := s.source.Register(b.ID, b.Trigger); err != nil {
		logging.Warn("failed to register hotkey", "error", err, "id", b.ID, "trigger", string(b.Trigger))
	}
}

func (s *Set) unregister(id string) {
	if !s.enabled {
		return
	}
	if err := s.source.Unregister(id); err != nil {
		logging.Warn("failed to unregister hotkey", "error", err, "id", id)
	}
}
