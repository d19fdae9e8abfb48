package marker

import "math"

// Markers is the marker pair plus the looping flag.
type Markers struct {
	a       *float64
	b       *float64
	looping bool
}

// State is an immutable copy of Markers for presentation.
type State struct {
	MarkerA   *float64 `json:"marker_a,omitempty"`
	MarkerB   *float64 `json:"marker_b,omitempty"`
	Looping   bool     `json:"looping"`
	LoopStart *float64 `json:"loop_start,omitempty"`
	LoopEnd   *float64 `json:"loop_end,omitempty"`
}

// New returns an empty Markers.
func New() *Markers {
	return &Markers{}
}

// SetMarkerA overwrites marker A.
func (m *Markers) SetMarkerA(position float64) {
	m.a = &position
}

// SetMarkerB overwrites marker B.
func (m *Markers) SetMarkerB(position float64) {
	m.b = &position
}

// MarkerA returns marker A and whether it is set.
func (m *Markers) MarkerA() (float64, bool) {
	if m.a == nil {
		return 0, false
	}
	return *m.a, true
}

// MarkerB returns marker B and whether it is set.
func (m *Markers) MarkerB() (float64, bool) {
	if m.b == nil {
		return 0, false
	}
	return *m.b, true
}

// HasMarkers reports whether both markers are set.
func (m *Markers) HasMarkers() bool {
	return m.a != nil && m.b != nil
}

// Looping reports whether the A-B loop is active.
func (m *Markers) Looping() bool {
	return m.looping
}

// LoopStart returns the earlier of the two markers.
// ok is false unless both markers are set.
func (m *Markers) LoopStart() (start float64, ok bool) {
	if !m.HasMarkers() {
		return 0, false
	}
	return math.Min(*m.a, *m.b), true
}

// LoopEnd returns the later of the two markers.
// ok is false unless both markers are set.
func (m *Markers) LoopEnd() (end float64, ok bool) {
	if !m.HasMarkers() {
		return 0, false
	}
	return math.Max(*m.a, *m.b), true
}

// ToggleLoop flips the looping flag. It does nothing unless both markers
// are set.
func (m *Markers) ToggleLoop() {
	if !m.HasMarkers() {
		return
	}
	m.looping = !m.looping
}

// ClearMarkers unsets both markers and stops looping.
func (m *Markers) ClearMarkers() {
	m.a = nil
	m.b = nil
	m.looping = false
}

// ShouldLoopBack reports whether playback at currentPosition has reached the
// end of an active loop and must be moved back to LoopStart.
func (m *Markers) ShouldLoopBack(currentPosition float64) bool {
	if !m.looping {
		return false
	}
	end, ok := m.LoopEnd()
	if !ok {
		return false
	}
	return currentPosition >= end
}

// Snapshot returns a copy of the current state.
func (m *Markers) Snapshot() State {
	s := State{
		MarkerA: copyFloat(m.a),
		MarkerB: copyFloat(m.b),
		Looping: m.looping,
	}
	if start, ok := m.LoopStart(); ok {
		s.LoopStart = &start
	}
	if end, ok := m.LoopEnd(); ok {
		s.LoopEnd = &end
	}
	return s
}

// HasMarkers reports whether both markers were set when the snapshot was taken.
func (s State) HasMarkers() bool {
	return s.MarkerA != nil && s.MarkerB != nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
