package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is a Player for tests. Its position is set directly and every call is
// recorded. Setting Unavailable makes all calls fail with ErrUnavailable.
type Mock struct {
	mu          sync.Mutex
	position    float64
	duration    float64
	playing     bool
	unavailable bool
	delay       time.Duration

	positionCalls int
	setCalls      []float64
	seekCalls     []float64
}

// NewMock creates a playing Mock at position 0 with a 300 second track.
func NewMock() *Mock {
	return &Mock{duration: 300, playing: true}
}

// SetCurrent sets the position reported by Position.
func (m *Mock) SetCurrent(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = seconds
}

// SetUnavailable toggles simulated player failure.
func (m *Mock) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = unavailable
}

// SetDelay makes every call wait d (or until ctx is done) before answering.
func (m *Mock) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Position returns the current mock position.
func (m *Mock) Position(ctx context.Context) (float64, error) {
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positionCalls++
	if m.unavailable {
		return 0, ErrUnavailable
	}
	return m.position, nil
}

// SetPosition records the call and moves the mock position.
func (m *Mock) SetPosition(ctx context.Context, seconds float64) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrUnavailable
	}
	m.setCalls = append(m.setCalls, seconds)
	m.position = seconds
	return nil
}

// Seek records the offset and seeks via SeekBy.
func (m *Mock) Seek(ctx context.Context, offset float64) error {
	m.mu.Lock()
	m.seekCalls = append(m.seekCalls, offset)
	m.mu.Unlock()
	return SeekBy(ctx, m, offset)
}

// IsPlaying returns the mock playing flag.
func (m *Mock) IsPlaying(ctx context.Context) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return false, ErrUnavailable
	}
	return m.playing, nil
}

// Duration returns the mock track duration.
func (m *Mock) Duration(ctx context.Context) (float64, error) {
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return 0, ErrUnavailable
	}
	return m.duration, nil
}

// SetPositionCalls returns every position written, in order.
func (m *Mock) SetPositionCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.setCalls...)
}

// SeekCalls returns every seek offset requested, in order.
func (m *Mock) SeekCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.seekCalls...)
}

// PositionCalls returns how many times Position was called.
func (m *Mock) PositionCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positionCalls
}

func (m *Mock) wait(ctx context.Context) error {
	m.mu.Lock()
	d := m.delay
	m.mu.Unlock()
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}
}
