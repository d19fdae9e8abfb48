package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
)

// KeySource is a hotkey.Source fed by key presses on a raw terminal. Each
// registered trigger is a single key; pressing it sends the binding id on
// the Triggered channel. Reserved keys (ControlKeys) are sent on the
// Controls channel instead. Ctrl+C, Ctrl+D and an unbound "q" end the session.
type KeySource struct {
	mu    sync.Mutex
	byKey map[hotkey.Trigger]string
	byID  map[string]hotkey.Trigger

	triggered chan string
	controls  chan Control
	quit      chan struct{}
	quitOnce  sync.Once
}

var _ hotkey.Source = (*KeySource)(nil)

// NewKeySource creates a KeySource with no registrations.
func NewKeySource() *KeySource {
	return &KeySource{
		byKey:     make(map[hotkey.Trigger]string),
		byID:      make(map[string]hotkey.Trigger),
		triggered: make(chan string, 16),
		controls:  make(chan Control, 16),
		quit:      make(chan struct{}),
	}
}

// Register binds trigger to id. A key can serve one binding at a time.
func (s *KeySource) Register(id string, trigger hotkey.Trigger) error {
	key := NormalizeTrigger(trigger)
	if key == "" {
		return fmt.Errorf("unsupported key %q", trigger)
	}
	if c, ok := ControlKeys[key]; ok {
		return fmt.Errorf("key %q is reserved for %s", key, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.byKey[key]; ok && owner != id {
		return fmt.Errorf("key %q already bound to %s", key, owner)
	}
	if old, ok := s.byID[id]; ok {
		delete(s.byKey, old)
	}
	s.byKey[key] = id
	s.byID[id] = key
	return nil
}

// Unregister removes the registration for id. Unknown ids are not an error.
func (s *KeySource) Unregister(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.byID[id]; ok {
		delete(s.byKey, key)
		delete(s.byID, id)
	}
	return nil
}

// Triggered returns the channel of fired binding ids.
func (s *KeySource) Triggered() <-chan string {
	return s.triggered
}

// Controls returns the channel of reserved-key controls.
func (s *KeySource) Controls() <-chan Control {
	return s.controls
}

// Quit is closed when the user asks to end the session.
func (s *KeySource) Quit() <-chan struct{} {
	return s.quit
}

// Lookup returns the id registered for a key.
func (s *KeySource) Lookup(key hotkey.Trigger) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKey[key]
	return id, ok
}

// Handle processes one key press. It returns false once the key ends the
// session.
func (s *KeySource) Handle(ctx context.Context, ev KeyEvent) bool {
	if ev.IsQuit() {
		s.closeQuit()
		return false
	}

	key := ev.Trigger()
	if key == "" {
		return true
	}

	if c, ok := ControlKeys[key]; ok {
		select {
		case s.controls <- c:
		case <-ctx.Done():
			return false
		}
		return true
	}

	id, ok := s.Lookup(key)
	if !ok {
		if key == "q" {
			s.closeQuit()
			return false
		}
		logging.Debug("unbound key", "key", string(key))
		return true
	}

	select {
	case s.triggered <- id:
	case <-ctx.Done():
		return false
	}
	return true
}

// Run reads keys from r until the input ends, the user quits or ctx is
// done. Quit is closed when it returns.
func (s *KeySource) Run(ctx context.Context, r *KeyReader) error {
	defer s.closeQuit()

	for {
		ev, err := r.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read key: %w", err)
		}
		if !s.Handle(ctx, ev) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *KeySource) closeQuit() {
	s.quitOnce.Do(func() { close(s.quit) })
}
